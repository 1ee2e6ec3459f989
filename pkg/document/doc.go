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

/*
Package document assembles the project document.

	+------+    +--------+    +-----------+    +---------+    +----------+
	| Init | -> | Select | -> | Transform | -> | Compose | -> | Finalize |
	+------+    +--------+    +-----------+    +---------+    +----------+
	   |            |               |               |               |
	.toak-ignore  git ls-files   CleanAndRedact    todo file      locked
	  merge       + RuleSet      skip if empty     appended       atomic write

🎯 Guarantees:
- Sections appear in the order version control lists the files
- A file that cannot be read, or is empty after cleaning, gets no section
- A failed listing yields an empty document, not an error
- Todo and write failures fail the run; Run reports them in Result.Err

📄 Format:

	# Project Files

	## <path>
	~~~
	<cleaned content>
	~~~

	---

	<todo content>

ParseSections reads a document in this format back for token statistics.
*/
package document
