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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/seemueller-io/toak/pkg/exclude"
	"github.com/seemueller-io/toak/pkg/text"
)

// 🎛️ Defaults
const (
	DefaultDir        = "."
	DefaultOutputPath = "./prompt.md"
)

// DiscoveryNames are the file names looked up, in order, when no explicit
// configuration file is given.
var DiscoveryNames = []string{".toak.yaml", ".toak.yml", ".toak.json", ".toak.hcl"}

// ErrNoParser is returned when no registered parser handles a file name.
var ErrNoParser = errors.New("no parser for config file")

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
//
// A nil FileTypeExclusions or FileExclusions keeps the built-in denylist;
// a non-nil value, even an empty one, replaces it.
type Config struct {
	Dir                  string          `json:"dir,omitempty" yaml:"dir,omitempty" hcl:"dir,optional"`
	OutputFilePath       string          `json:"output_file_path,omitempty" yaml:"output_file_path,omitempty" hcl:"output_file_path,optional"`
	FileTypeExclusions   []string        `json:"file_type_exclusions,omitempty" yaml:"file_type_exclusions,omitempty" hcl:"file_type_exclusions,optional"`
	FileExclusions       []string        `json:"file_exclusions,omitempty" yaml:"file_exclusions,omitempty" hcl:"file_exclusions,optional"`
	CustomPatterns       []text.RuleSpec `json:"custom_patterns,omitempty" yaml:"custom_patterns,omitempty" hcl:"custom_pattern,block"`
	CustomSecretPatterns []text.RuleSpec `json:"custom_secret_patterns,omitempty" yaml:"custom_secret_patterns,omitempty" hcl:"custom_secret_pattern,block"`
	Verbose              bool            `json:"verbose,omitempty" yaml:"verbose,omitempty" hcl:"verbose,optional"`

	location      string
	customRules   []text.Rule
	customSecrets []text.Rule
}

// 🏭 Default returns a validated configuration holding only defaults.
func Default() *Config {
	cfg := &Config{}
	// defaults always validate
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("%s: %w", path, ErrNoParser)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	cfg.location = path

	return cfg, nil
}

// 🔍 Discover loads explicit when set, otherwise the first DiscoveryNames
// entry present in dir, otherwise the defaults.
func Discover(ctx context.Context, dir, explicit string) (*Config, error) {
	if explicit != "" {
		return Load(ctx, explicit)
	}
	for _, name := range DiscoveryNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(ctx, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Errorf("checking %s: %w", path, err)
		}
	}
	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file found, using defaults")
	return Default(), nil
}

// 🔍 Validate applies defaults, normalises extensions and compiles the
// custom rules. It is safe to call more than once.
func (cfg *Config) Validate() error {
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir
	}
	if cfg.OutputFilePath == "" {
		cfg.OutputFilePath = DefaultOutputPath
	}

	if cfg.FileTypeExclusions != nil {
		exts := make([]string, 0, len(cfg.FileTypeExclusions))
		for _, ext := range cfg.FileTypeExclusions {
			if ext = exclude.NormalizeExtension(ext); ext != "" {
				exts = append(exts, ext)
			}
		}
		cfg.FileTypeExclusions = exts
	}

	for i, pattern := range cfg.FileExclusions {
		if !exclude.ValidPattern(pattern) {
			return errors.Errorf("file_exclusions[%d]: invalid pattern %q", i, pattern)
		}
	}

	rules, err := text.CompileRules("custom_pattern", cfg.CustomPatterns)
	if err != nil {
		return errors.Errorf("custom_patterns: %w", err)
	}
	secrets, err := text.CompileRules("custom_secret_pattern", cfg.CustomSecretPatterns)
	if err != nil {
		return errors.Errorf("custom_secret_patterns: %w", err)
	}
	cfg.customRules = rules
	cfg.customSecrets = secrets

	return nil
}

// Location returns the file the configuration was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🚫 RuleSet builds the exclusion rule set, falling back to the built-in
// denylists for any list left unset.
func (cfg *Config) RuleSet() *exclude.RuleSet {
	exts := cfg.FileTypeExclusions
	if exts == nil {
		exts = exclude.DefaultExtensions()
	}
	patterns := cfg.FileExclusions
	if patterns == nil {
		patterns = exclude.DefaultPatterns()
	}
	return exclude.New(exts, patterns)
}

// 🧹 Cleaner builds the text cleaner with the custom rules appended.
func (cfg *Config) Cleaner() *text.Cleaner {
	return text.NewCleaner(
		text.WithRules(cfg.customRules...),
		text.WithSecretRules(cfg.customSecrets...),
	)
}

// Resolve joins a relative path onto Dir. Absolute paths pass through.
func (cfg *Config) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}
	return filepath.Join(dir, path)
}

// OutputPath returns the output document path resolved against Dir.
func (cfg *Config) OutputPath() string {
	out := cfg.OutputFilePath
	if out == "" {
		out = DefaultOutputPath
	}
	return cfg.Resolve(out)
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s -> %s (%d custom rules, %d custom secret rules)",
		cfg.Dir, cfg.OutputFilePath, len(cfg.CustomPatterns), len(cfg.CustomSecretPatterns))
}
