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
	"strconv"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Redaction markers
const (
	RedactedMarker       = "[REDACTED]"
	RedactedJWTMarker    = "[REDACTED_JWT]"
	RedactedHashMarker   = "[REDACTED_HASH]"
	RedactedBase64Marker = "[REDACTED_BASE64]"
)

// ErrInvalidRule is returned when a caller-supplied rule does not compile.
var ErrInvalidRule = errors.New("invalid rule")

// 📏 Rule is a single ordered rewrite applied to a whole text buffer.
//
// Replacement may reference capture groups using ${n}. When Accept is set the
// rule only rewrites matches Accept approves, and Replacement is used literally.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
	Accept      func(match string) bool
}

// RuleSpec is the serialisable form of a caller-supplied rule.
type RuleSpec struct {
	Pattern     string `json:"pattern" yaml:"pattern" hcl:"pattern"`
	Replacement string `json:"replacement" yaml:"replacement" hcl:"replacement,optional"`
}

// Apply runs the rule over the entire buffer.
func (r Rule) Apply(s string) string {
	if r.Pattern == nil {
		return s
	}
	if r.Accept == nil {
		return r.Pattern.ReplaceAllString(s, r.Replacement)
	}
	return r.Pattern.ReplaceAllStringFunc(s, func(m string) string {
		if r.Accept(m) {
			return r.Replacement
		}
		return m
	})
}

// NewRule compiles a caller-supplied rule.
func NewRule(name, pattern, replacement string) (Rule, error) {
	if pattern == "" {
		return Rule{}, errors.Errorf("%s: pattern is required: %w", name, ErrInvalidRule)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, errors.Errorf("%s: %w: %s", name, ErrInvalidRule, err.Error())
	}
	return Rule{Name: name, Pattern: re, Replacement: replacement}, nil
}

// CompileRules compiles specs in order, naming each after its position.
func CompileRules(prefix string, specs []RuleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for i, spec := range specs {
		r, err := NewRule(prefix+"_"+strconv.Itoa(i), spec.Pattern, spec.Replacement)
		if err != nil {
			return nil, errors.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

