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

package document

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
	"gitlab.com/tozd/go/errors"

	"github.com/seemueller-io/toak/pkg/tokens"
)

// 📖 ParseSections reads back a generated document. Every level-2 heading
// immediately followed by a fenced code block is one section; anything else
// is ignored.
func ParseSections(source []byte) ([]Section, error) {
	doc := goldmark.New().Parser().Parse(gmtext.NewReader(source))

	var sections []Section
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 2 {
			return ast.WalkContinue, nil
		}
		block, ok := heading.NextSibling().(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkSkipChildren, nil
		}
		path := strings.TrimSpace(string(lineText(heading.Lines(), source)))
		if path == "" {
			return ast.WalkSkipChildren, nil
		}
		sections = append(sections, Section{
			Path:    path,
			Content: strings.TrimSuffix(string(lineText(block.Lines(), source)), "\n"),
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, errors.Errorf("walking document: %w", err)
	}
	return sections, nil
}

// 📊 Stats counts each section's tokens and orders the result by descending
// count, then path.
func Stats(sections []Section, counter tokens.Counter) ([]SectionStat, int) {
	stats := make([]SectionStat, 0, len(sections))
	total := 0
	for _, s := range sections {
		n := counter.Count(s.Content)
		stats = append(stats, SectionStat{Path: s.Path, Tokens: n})
		total += n
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Tokens != stats[j].Tokens {
			return stats[i].Tokens > stats[j].Tokens
		}
		return stats[i].Path < stats[j].Path
	})
	return stats, total
}

func lineText(lines *gmtext.Segments, source []byte) []byte {
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.Bytes()
}
