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

// defaultExtensions are binary, media, archive and generated formats.
var defaultExtensions = []string{
	// images
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".svg", ".webp", ".tiff", ".psd",
	// audio / video
	".mp3", ".mp4", ".wav", ".ogg", ".webm", ".mov", ".avi",
	// documents and archives
	".pdf", ".zip", ".tar", ".gz", ".tgz", ".rar", ".7z",
	// compiled artifacts
	".jar", ".war", ".exe", ".dll", ".so", ".dylib", ".bin", ".o", ".a", ".class", ".pyc", ".wasm",
	// fonts
	".woff", ".woff2", ".ttf", ".otf", ".eot",
	// data and noise
	".db", ".sqlite", ".lock", ".log", ".map",
}

// defaultPatterns are paths that rarely help a reader understand the code.
var defaultPatterns = []string{
	"**/.*rc",
	"**/.env*",
	"**/*.{test,spec}.*",
	"**/*_test.go",
	"**/.git/",
	"**/node_modules/",
	"**/vendor/",
	"**/dist/",
	"**/build/",
	"**/coverage/",
	"**/.idea/",
	"**/.vscode/",
	"**/*.min.{js,css}",
	"**/{package-lock.json,yarn.lock,pnpm-lock.yaml,go.sum,Cargo.lock}",
	"**/.DS_Store",
	"**/.gitignore",
	"**/.toak-ignore",
	"**/todo",
	"**/prompt.md",
}

// DefaultExtensions returns a copy of the built-in extension denylist.
func DefaultExtensions() []string {
	return append([]string(nil), defaultExtensions...)
}

// DefaultPatterns returns a copy of the built-in pattern denylist.
func DefaultPatterns() []string {
	return append([]string(nil), defaultPatterns...)
}
