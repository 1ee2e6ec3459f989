// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package text

import (
	"regexp"
	"strings"
)

// credentialNames is the key vocabulary treated as sensitive in assignments.
const credentialNames = `api[_-]?key|api[_-]?secret|access[_-]?token|auth[_-]?token|client[_-]?secret|password|secret[_-]?key|private[_-]?key`

// credentialKey matches the key and separator of an assignment, e.g. `DB_PASSWORD := ` or `"apiKey": `.
const credentialKey = `\b[\w-]*?(?:` + credentialNames + `)[\w-]*["']?[ \t]*(?::=|[:=])[ \t]*`

var lineComment = regexp.MustCompile(`(?m)(^|[^:/*\n])//.*$`)

// 🧹 structuralRules strip comments and boilerplate. Order matters: blank-line
// handling relies on the comment and debug-print rules having emptied lines first.
var structuralRules = []Rule{
	{
		// a // directly after : or another / or * belongs to a URL or a block comment
		Name:        "line_comment",
		Pattern:     lineComment,
		Replacement: "${1}",
	},
	{
		Name:    "block_comment",
		Pattern: regexp.MustCompile(`(?s)/\*.*?\*/`),
	},
	{
		Name:    "debug_print",
		Pattern: regexp.MustCompile(`console\.(?:log|debug|info|warn|error|trace)\((?:[^()]|\([^()]*\))*\);?`),
	},
	{
		// comments exposed once the block comment or debug print ahead of them is gone
		Name:        "exposed_line_comment",
		Pattern:     lineComment,
		Replacement: "${1}",
	},
	{
		// whitespace-only lines become empty so the collapse rule can fold them
		Name:        "blank_line",
		Pattern:     regexp.MustCompile(`(?m)^[ \t]+(\r?)$`),
		Replacement: "${1}",
	},
	{
		Name:        "trailing_whitespace",
		Pattern:     regexp.MustCompile(`(?m)[ \t]+(\r?)$`),
		Replacement: "${1}",
	},
	{
		Name:    "import_statement",
		Pattern: regexp.MustCompile(`(?m)^[ \t]*import[ \t]+(?:[^\n]*[ \t]from[ \t]+)?(?:"[^"\n]*"|'[^'\n]*'|[\w.]+)[ \t]*;?[ \t]*\r?(?:\n|$)`),
	},
	{
		Name:        "blank_run",
		Pattern:     regexp.MustCompile(`(\r?\n){3,}`),
		Replacement: "${1}${1}",
	},
}

// 🔐 secretRules redact credential-shaped spans. The labelled assignment rules
// run first so short secrets are caught before the length-based detectors.
var secretRules = []Rule{
	{
		Name:        "double_quoted_credential",
		Pattern:     regexp.MustCompile(`(?i)(` + credentialKey + `)"[^"\r\n]+"`),
		Replacement: `${1}"` + RedactedMarker + `"`,
	},
	{
		Name:        "single_quoted_credential",
		Pattern:     regexp.MustCompile(`(?i)(` + credentialKey + `)'[^'\r\n]+'`),
		Replacement: "${1}'" + RedactedMarker + "'",
	},
	{
		Name:        "unquoted_credential",
		Pattern:     regexp.MustCompile(`(?i)(` + credentialKey + `)[^\s"'\[=][^\s"',;]*`),
		Replacement: "${1}" + RedactedMarker,
	},
	{
		Name:        "bearer_token",
		Pattern:     regexp.MustCompile(`(?i)(\bbearer[ \t]+)[A-Za-z0-9._~+/-]{16,}=*`),
		Replacement: "${1}" + RedactedMarker,
	},
	{
		Name:        "authorization_header",
		Pattern:     regexp.MustCompile(`(?i)(\bauthorization[ \t]*:[ \t]*bearer[ \t]+)[A-Za-z0-9._~+/-]+=*`),
		Replacement: "${1}" + RedactedMarker,
	},
	{
		Name:        "jwt",
		Pattern:     regexp.MustCompile(`\beyJ[A-Za-z0-9_-]{5,}\.[A-Za-z0-9_-]{5,}\.[A-Za-z0-9_-]{5,}`),
		Replacement: RedactedJWTMarker,
	},
	{
		// maximal alphanumeric runs, so the length check is on the whole standalone token
		Name:        "hex_digest",
		Pattern:     regexp.MustCompile(`[A-Za-z0-9]+`),
		Replacement: RedactedHashMarker,
		Accept:      isDigest,
	},
	{
		Name:        "base64_blob",
		Pattern:     regexp.MustCompile(`[A-Za-z0-9+/]+={0,2}`),
		Replacement: RedactedBase64Marker,
		Accept:      isBase64Blob,
	},
}

// markerLine matches a line left holding nothing but redaction markers,
// optionally behind the key that labelled them.
var markerLine = regexp.MustCompile(`(?m)^[ \t]*(?:(?:export|const|let|var)[ \t]+)?(?:["']?[\w.$-]+["']?[ \t]*(?::=|[:=])[ \t]*)?(?:["']?\[REDACTED(?:_[A-Z0-9]+)?\]["']?[ \t]*[,;]?[ \t]*)+\r?(?:\n|$)`)

// markerPattern matches any redaction marker.
var markerPattern = regexp.MustCompile(`\[REDACTED(?:_[A-Z0-9]+)?\]`)

// StructuralRules returns a copy of the built-in structural cleanup rules.
func StructuralRules() []Rule {
	return append([]Rule(nil), structuralRules...)
}

// SecretRules returns a copy of the built-in secret redaction rules.
func SecretRules() []Rule {
	return append([]Rule(nil), secretRules...)
}

func isDigest(m string) bool {
	if len(m) != 40 && len(m) != 64 {
		return false
	}
	return strings.Trim(m, "0123456789abcdefABCDEF") == ""
}

func isBase64Blob(m string) bool {
	if len(m) != 40 && len(m) != 64 {
		return false
	}
	return strings.ContainsAny(m, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")
}
