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

package opts

import (
	"context"

	"github.com/seemueller-io/toak/pkg/config"
	"github.com/seemueller-io/toak/pkg/document"
	"github.com/seemueller-io/toak/pkg/log"
)

// 🎛️ RootOpts is filled in before any subcommand runs.
type RootOpts struct {
	Config *config.Config
	Logger *log.Logger
}

// 🏭 Generator builds a document generator from the resolved options.
func (o *RootOpts) Generator(ctx context.Context) *document.Generator {
	return document.New(ctx, document.Options{
		Config: o.Config,
		Logger: o.Logger,
	})
}
