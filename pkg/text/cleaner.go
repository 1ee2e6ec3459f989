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
	"strings"
)

// Cleaner applies the structural and secret rule lists to text buffers.
// A Cleaner is immutable after construction and safe for concurrent use.
type Cleaner struct {
	structural []Rule
	secrets    []Rule
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithRules appends structural rules after the built-in ones.
func WithRules(rules ...Rule) Option {
	return func(c *Cleaner) {
		c.structural = append(c.structural, rules...)
	}
}

// WithSecretRules appends secret rules after the built-in ones.
func WithSecretRules(rules ...Rule) Option {
	return func(c *Cleaner) {
		c.secrets = append(c.secrets, rules...)
	}
}

// NewCleaner creates a Cleaner from the built-in library plus any extra rules.
func NewCleaner(opts ...Option) *Cleaner {
	c := &Cleaner{
		structural: StructuralRules(),
		secrets:    SecretRules(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clean applies the structural rules in order, each over the whole buffer.
func (c *Cleaner) Clean(s string) string {
	return applyAll(c.structural, s)
}

// RedactSecrets applies the secret rules in order, each over the whole buffer.
func (c *Cleaner) RedactSecrets(s string) string {
	return applyAll(c.secrets, s)
}

// CleanAndRedact redacts secrets, drops lines left holding only markers,
// applies structural cleanup and trims the result.
func (c *Cleaner) CleanAndRedact(s string) string {
	s = c.RedactSecrets(s)
	s = markerLine.ReplaceAllString(s, "")
	s = c.Clean(s)
	return strings.TrimSpace(s)
}

// CountMarkers returns how many redaction markers appear in s.
func CountMarkers(s string) int {
	return len(markerPattern.FindAllStringIndex(s, -1))
}

func applyAll(rules []Rule, s string) string {
	if s == "" {
		return s
	}
	for _, r := range rules {
		s = r.Apply(s)
	}
	return s
}
