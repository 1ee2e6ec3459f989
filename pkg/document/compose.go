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
	"strings"
)

// 📄 Document layout
const (
	Header    = "# Project Files\n\n"
	Separator = "---\n\n"
	fence     = "~~~"
)

// 📦 Section is one file's cleaned content as it appears in the document.
type Section struct {
	Path    string
	Content string
	Tokens  int
}

// 📊 SectionStat is the per-file accounting reported with a Result.
type SectionStat struct {
	Path   string `json:"path"`
	Tokens int    `json:"tokens"`
}

// 🧩 Compose renders the document: header, one fenced section per file in
// order, separator, then the todo content verbatim with a trailing newline
// unless it is empty.
func Compose(sections []Section, todo string) string {
	var b strings.Builder
	b.WriteString(Header)
	for _, s := range sections {
		f := fenceFor(s.Content)
		b.WriteString("## ")
		b.WriteString(s.Path)
		b.WriteString("\n")
		b.WriteString(f)
		b.WriteString("\n")
		b.WriteString(s.Content)
		b.WriteString("\n")
		b.WriteString(f)
		b.WriteString("\n\n")
	}
	b.WriteString(Separator)
	b.WriteString(todo)
	if todo != "" && !strings.HasSuffix(todo, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// fenceFor returns a tilde fence longer than any tilde run opening a line
// of body.
func fenceFor(body string) string {
	longest := 0
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimLeft(line, " ")
		n := len(line) - len(strings.TrimLeft(line, "~"))
		if n > longest {
			longest = n
		}
	}
	if longest < len(fence) {
		return fence
	}
	return strings.Repeat("~", longest+1)
}
