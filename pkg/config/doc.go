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

// Package config loads toak's configuration surface.
//
//	+--------------+     +----------+     +-----------+
//	| .toak.{yaml, | --> |  Parser  | --> |  Config   |
//	| json,hcl}    |     | registry |     | Validate  |
//	+--------------+     +----------+     +-----------+
//	                                            |
//	                           +----------------+---------------+
//	                           v                                v
//	                   exclude.RuleSet                     text.Cleaner
//
// 🎯 Purpose:
// - Finds the configuration file (explicit path or discovery in the working dir)
// - Selects a parser by file extension
// - Applies defaults and compiles caller supplied rules
//
// ⚡ Rules:
// - Unknown keys are rejected in every format
// - An unset denylist keeps the built-in one, a set denylist replaces it
// - Custom rules run after the built-in rules of the same kind
//
// 🔍 Example (HCL):
//
//	dir              = "."
//	output_file_path = "${env.HOME}/prompt.md"
//	file_exclusions  = ["**/testdata/", "**/*.gen.go"]
//	verbose          = true
//
//	custom_secret_pattern {
//	  pattern     = "tok_[a-z0-9]{24}"
//	  replacement = "[REDACTED]"
//	}
package config
