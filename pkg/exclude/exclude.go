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

// Package exclude decides which repository paths are left out of a document.
package exclude

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// 🚫 RuleSet holds the extension denylist and the ordered pattern denylist.
//
// A RuleSet is built once, merged with override patterns during
// initialisation, and only read afterwards. It is not safe for concurrent
// mutation.
type RuleSet struct {
	extensions map[string]struct{}
	extOrder   []string
	patterns   []string
}

// 🏭 New creates a rule set from explicit denylists. Extensions are
// lowercased and given a leading dot when missing.
func New(extensions []string, patterns []string) *RuleSet {
	rs := &RuleSet{extensions: make(map[string]struct{}, len(extensions))}
	for _, ext := range extensions {
		ext = NormalizeExtension(ext)
		if ext == "" {
			continue
		}
		if _, ok := rs.extensions[ext]; ok {
			continue
		}
		rs.extensions[ext] = struct{}{}
		rs.extOrder = append(rs.extOrder, ext)
	}
	rs.Merge(patterns...)
	return rs
}

// 🏭 Default creates a rule set from the built-in denylists.
func Default() *RuleSet {
	return New(DefaultExtensions(), DefaultPatterns())
}

// NormalizeExtension lowercases ext and ensures it starts with a dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// 🔄 Merge appends patterns and removes duplicates, keeping first-seen order.
func (rs *RuleSet) Merge(patterns ...string) {
	seen := make(map[string]struct{}, len(rs.patterns)+len(patterns))
	merged := make([]string, 0, len(rs.patterns)+len(patterns))
	add := func(p string) {
		p = strings.TrimSpace(p)
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		merged = append(merged, p)
	}
	for _, p := range rs.patterns {
		add(p)
	}
	for _, p := range patterns {
		add(p)
	}
	rs.patterns = merged
}

// Clone returns an independent copy of the rule set.
func (rs *RuleSet) Clone() *RuleSet {
	c := &RuleSet{
		extensions: make(map[string]struct{}, len(rs.extensions)),
		extOrder:   append([]string(nil), rs.extOrder...),
		patterns:   append([]string(nil), rs.patterns...),
	}
	for ext := range rs.extensions {
		c.extensions[ext] = struct{}{}
	}
	return c
}

// Patterns returns a copy of the pattern denylist in order.
func (rs *RuleSet) Patterns() []string {
	return append([]string(nil), rs.patterns...)
}

// Extensions returns a copy of the extension denylist in insertion order.
func (rs *RuleSet) Extensions() []string {
	return append([]string(nil), rs.extOrder...)
}

// 🔍 IsExcluded reports whether the repository-relative path is denied.
func (rs *RuleSet) IsExcluded(p string) bool {
	_, excluded := rs.Reason(p)
	return excluded
}

// 🔍 Reason reports the first rule that excludes p, if any. Extension
// matches are reported as the extension, pattern matches as the pattern.
func (rs *RuleSet) Reason(p string) (string, bool) {
	p = normalizePath(p)
	if ext := strings.ToLower(path.Ext(p)); ext != "" {
		if _, ok := rs.extensions[ext]; ok {
			return ext, true
		}
	}
	for _, pattern := range rs.patterns {
		if Match(pattern, p) {
			return pattern, true
		}
	}
	return "", false
}

// 🎯 Match tests a single pattern against a slash-separated path.
//
// A leading "/" anchors the pattern at the root, a trailing "/" matches the
// named directory and everything beneath it. Matching is case-sensitive and
// wildcards match dotfiles. Invalid patterns never match.
func Match(pattern, p string) bool {
	pattern = normalizePattern(pattern)
	if pattern == "" {
		return false
	}
	matched, err := doublestar.Match(pattern, normalizePath(p))
	return err == nil && matched
}

// ValidPattern reports whether pattern is a well-formed glob.
func ValidPattern(pattern string) bool {
	pattern = normalizePattern(pattern)
	return pattern != "" && doublestar.ValidatePattern(pattern)
}

func normalizePattern(pattern string) string {
	pattern = filepath.ToSlash(strings.TrimSpace(pattern))
	pattern = strings.TrimPrefix(pattern, "./")
	pattern = strings.TrimPrefix(pattern, "/")
	if strings.HasSuffix(pattern, "/") {
		pattern = strings.TrimRight(pattern, "/")
		if pattern == "" {
			return ""
		}
		pattern += "/**"
	}
	return pattern
}

func normalizePath(p string) string {
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return strings.TrimPrefix(p, "/")
}
