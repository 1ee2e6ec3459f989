/*
Package text scrubs source text before it is placed in a prompt document.

	     input
	       |
	+------+-------+
	| secret rules |  quoted/unquoted credentials, bearer, JWT, digests, base64
	+------+-------+
	       |
	+------+-------+
	| marker lines |  lines holding only redaction markers are dropped
	+------+-------+
	       |
	+------+-------+
	|  structural  |  comments, debug prints, blank lines, imports
	+------+-------+
	       |
	     trim

Every rule is a regular expression applied to the whole buffer, in order.
Later rules depend on the output of earlier ones, so the lists are never
reordered; caller-supplied rules are appended after the built-in ones.

Known limitation: the digest and base64 detectors match any standalone
40 or 64 character token of the right alphabet, so long identifiers of that
exact length are redacted too.
*/
package text
