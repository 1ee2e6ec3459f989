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

package exclude

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{name: "directory_marker_matches_subtree", pattern: "**/build/", path: "build/out.js", want: true},
		{name: "directory_marker_matches_nested_subtree", pattern: "**/build/", path: "a/b/build/c/out.js", want: true},
		{name: "directory_marker_does_not_match_file", pattern: "**/build/", path: "src/build.js", want: false},
		{name: "brace_alternation", pattern: "**/*.{test,spec}.*", path: "src/x.test.ts", want: true},
		{name: "brace_alternation_second_branch", pattern: "**/*.{test,spec}.*", path: "x.spec.js", want: true},
		{name: "brace_alternation_miss", pattern: "**/*.{test,spec}.*", path: "src/x.ts", want: false},
		{name: "single_star_is_depth_anchored", pattern: "*.js", path: "src/a.js", want: false},
		{name: "single_star_at_root", pattern: "*.js", path: "a.js", want: true},
		{name: "literal_path", pattern: "pkg/sub/local.json", path: "pkg/sub/local.json", want: true},
		{name: "literal_path_other_depth", pattern: "pkg/sub/local.json", path: "local.json", want: false},
		{name: "whole_path_not_substring", pattern: "sub/local.json", path: "pkg/sub/local.json", want: false},
		{name: "dotfiles_match_wildcards", pattern: "**/*", path: ".github/workflows/ci.yml", want: true},
		{name: "dot_env_prefix", pattern: "**/.env*", path: "config/.env.local", want: true},
		{name: "case_sensitive", pattern: "**/README.md", path: "readme.md", want: false},
		{name: "leading_slash_anchors_root", pattern: "/LICENSE", path: "LICENSE", want: true},
		{name: "leading_slash_not_nested", pattern: "/LICENSE", path: "docs/LICENSE", want: false},
		{name: "dot_slash_path", pattern: "src/*.go", path: "./src/main.go", want: true},
		{name: "invalid_pattern_never_matches", pattern: "src/[", path: "src/[", want: false},
		{name: "empty_pattern", pattern: "", path: "a", want: false},
		{name: "bare_slash", pattern: "/", path: "a", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.pattern, tt.path)
			assert.Equal(t, tt.want, got, "Match(%q, %q)", tt.pattern, tt.path)
		})
	}
}

func TestRuleSet_IsExcluded(t *testing.T) {
	rs := New([]string{"PNG", ".Lock"}, []string{"**/build/", "docs/*.md"})

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "extension", path: "assets/logo.png", want: true},
		{name: "extension_case_insensitive", path: "assets/LOGO.PNG", want: true},
		{name: "normalized_extension", path: "yarn.lock", want: true},
		{name: "pattern", path: "build/out.js", want: true},
		{name: "pattern_depth", path: "docs/a/b.md", want: false},
		{name: "pattern_exact_depth", path: "docs/b.md", want: true},
		{name: "kept", path: "src/build.js", want: false},
		{name: "no_extension", path: "Makefile", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rs.IsExcluded(tt.path))
		})
	}
}

func TestRuleSet_Reason(t *testing.T) {
	rs := New([]string{".png"}, []string{"**/dist/"})

	reason, ok := rs.Reason("a/b.png")
	assert.True(t, ok)
	assert.Equal(t, ".png", reason)

	reason, ok = rs.Reason("dist/app.js")
	assert.True(t, ok)
	assert.Equal(t, "**/dist/", reason)

	_, ok = rs.Reason("src/app.js")
	assert.False(t, ok)
}

func TestRuleSet_Merge(t *testing.T) {
	rs := New(nil, []string{"a", "b"})
	rs.Merge("b", "c", "  ", "a", "d", "c")

	assert.Equal(t, []string{"a", "b", "c", "d"}, rs.Patterns(), "merge should dedupe in first-seen order")
}

func TestRuleSet_Clone(t *testing.T) {
	rs := New([]string{".png"}, []string{"a"})
	c := rs.Clone()
	c.Merge("b")

	assert.Equal(t, []string{"a"}, rs.Patterns(), "original should be untouched")
	assert.Equal(t, []string{"a", "b"}, c.Patterns())
	assert.Equal(t, []string{".png"}, c.Extensions())
}

func kept(rs *RuleSet, paths []string) []string {
	var out []string
	for _, p := range paths {
		if !rs.IsExcluded(p) {
			out = append(out, p)
		}
	}
	return out
}

func TestDefault_Survivors(t *testing.T) {
	rs := Default()

	got := kept(rs, []string{"a.png", "src/x.ts", "src/x.test.ts"})
	assert.Equal(t, []string{"src/x.ts"}, got)

	got = kept(rs, []string{
		"README.md",
		"node_modules/left-pad/index.js",
		".env",
		".env.production",
		".eslintrc",
		"go.sum",
		"pkg/a_test.go",
		"pkg/a.go",
		"web/app.min.js",
		"web/app.js",
	})
	assert.Equal(t, []string{"README.md", "pkg/a.go", "web/app.js"}, got, "survivors should keep their order")
}

func TestDefaults_AreCopies(t *testing.T) {
	exts := DefaultExtensions()
	exts[0] = ".changed"
	assert.NotEqual(t, ".changed", DefaultExtensions()[0])

	patterns := DefaultPatterns()
	patterns[0] = "changed"
	assert.NotEqual(t, "changed", DefaultPatterns()[0])
}

func TestValidPattern(t *testing.T) {
	assert.True(t, ValidPattern("**/*.{a,b}"))
	assert.True(t, ValidPattern("build/"))
	assert.False(t, ValidPattern("src/["))
	assert.False(t, ValidPattern("{a,b"))
	assert.False(t, ValidPattern(""))
}
