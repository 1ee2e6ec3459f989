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

// Package tokens counts tokens the way LLM tokenizers do.
package tokens

import (
	"context"
	"unicode/utf8"

	tiktoken "github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultEncoding is used by GPT-4 class models and is a fair approximation
// for other providers.
const DefaultEncoding = "cl100k_base"

// Counter returns the number of tokens in a text. Implementations must be
// deterministic and free of side effects.
type Counter interface {
	Count(text string) int
}

// Tiktoken counts tokens with a BPE encoding.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken loads the named encoding.
func NewTiktoken(encoding string) (*Tiktoken, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, errors.Errorf("loading encoding %s: %w", encoding, err)
	}
	return &Tiktoken{enc: enc}, nil
}

// Count implements Counter.
func (t *Tiktoken) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(t.enc.Encode(text, nil, nil))
}

// Estimate approximates four characters per token. It is used when no
// encoding can be loaded, for example offline with an empty cache.
type Estimate struct{}

// Count implements Counter.
func (Estimate) Count(text string) int {
	return (utf8.RuneCountInString(text) + 3) / 4
}

// New returns a Tiktoken counter for DefaultEncoding, falling back to
// Estimate when the encoding is unavailable.
func New(ctx context.Context) Counter {
	t, err := NewTiktoken(DefaultEncoding)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("tokenizer unavailable, estimating token counts")
		return Estimate{}
	}
	return t
}
