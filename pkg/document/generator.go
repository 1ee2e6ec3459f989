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
	"context"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/seemueller-io/toak/pkg/config"
	"github.com/seemueller-io/toak/pkg/exclude"
	"github.com/seemueller-io/toak/pkg/filelock"
	"github.com/seemueller-io/toak/pkg/ignorefile"
	"github.com/seemueller-io/toak/pkg/log"
	"github.com/seemueller-io/toak/pkg/text"
	"github.com/seemueller-io/toak/pkg/tokens"
	"github.com/seemueller-io/toak/pkg/vcs"
)

// TodoFileName is the companion file appended after the separator.
const TodoFileName = "todo"

// 🎯 Result reports the outcome of one generation run.
type Result struct {
	RunID      uuid.UUID
	Success    bool
	TokenCount int
	Err        error
	OutputPath string
	Sections   []SectionStat
}

// ⚙️ Options wires a Generator to its collaborators. Zero values are
// replaced with the defaults derived from Config.
type Options struct {
	Config  *config.Config
	Lister  vcs.Lister
	Counter tokens.Counter
	Cleaner *text.Cleaner
	RuleSet *exclude.RuleSet
	Logger  *log.Logger
}

// 🏭 Generator turns the tracked files of a project into one document.
type Generator struct {
	cfg     *config.Config
	lister  vcs.Lister
	counter tokens.Counter
	cleaner *text.Cleaner
	rules   *exclude.RuleSet
	logger  *log.Logger
}

// New creates a Generator. The configured rule set is cloned on every run,
// so override files are merged afresh each time.
func New(ctx context.Context, opts Options) *Generator {
	g := &Generator{
		cfg:     opts.Config,
		lister:  opts.Lister,
		counter: opts.Counter,
		cleaner: opts.Cleaner,
		rules:   opts.RuleSet,
		logger:  opts.Logger,
	}
	if g.cfg == nil {
		g.cfg = config.Default()
	}
	if g.lister == nil {
		g.lister = vcs.NewGit(g.cfg.Dir)
	}
	if g.counter == nil {
		g.counter = tokens.New(ctx)
	}
	if g.cleaner == nil {
		g.cleaner = g.cfg.Cleaner()
	}
	if g.rules == nil {
		g.rules = g.cfg.RuleSet()
	}
	if g.logger == nil {
		g.logger = log.Discard()
	}
	return g
}

// 🚀 Run executes Init, Select, Transform, Compose and Finalize once.
// Failures are reported through the Result and never returned or raised.
func (g *Generator) Run(ctx context.Context) (res Result) {
	res = Result{
		RunID:      uuid.New(),
		OutputPath: g.cfg.OutputPath(),
	}

	logger := zerolog.Ctx(ctx).With().Str("run_id", res.RunID.String()).Logger()
	ctx = logger.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			res.Success = false
			res.TokenCount = 0
			res.Err = errors.Errorf("generation panicked: %v", r)
		}
		if res.Err != nil {
			logger.Error().Err(res.Err).Msg("generation failed")
			g.logger.Errorf("generation failed: %v", res.Err)
		}
	}()

	g.logger.Header("generating " + g.cfg.OutputFilePath)

	rules := g.init(ctx)

	paths := g.selectPaths(ctx, rules)

	sections := g.transform(ctx, paths)

	todo, err := g.readTodo(ctx)
	if err != nil {
		res.Err = err
		return res
	}

	doc := Compose(sections, todo)

	if err := filelock.LockAndWrite(res.OutputPath, []byte(doc)); err != nil {
		res.Err = errors.Errorf("writing document: %w", err)
		return res
	}

	res.Success = true
	res.TokenCount = g.counter.Count(doc)
	res.Sections = make([]SectionStat, 0, len(sections))
	for _, s := range sections {
		res.Sections = append(res.Sections, SectionStat{Path: s.Path, Tokens: s.Tokens})
	}

	logger.Info().
		Str("output", res.OutputPath).
		Int("sections", len(sections)).
		Int("tokens", res.TokenCount).
		Msg("document written")
	g.logger.Summary(res.OutputPath, len(sections), res.TokenCount)

	return res
}

// init ensures the root override file exists and merges every override
// file's patterns into a copy of the configured rule set.
func (g *Generator) init(ctx context.Context) *exclude.RuleSet {
	logger := zerolog.Ctx(ctx)

	created, err := ignorefile.EnsureRoot(g.cfg.Dir)
	switch {
	case err != nil:
		logger.Warn().Err(err).Msg("could not create root override file")
		g.logger.Warningf("could not create %s: %v", ignorefile.FileName, err)
	case created:
		logger.Info().Str("file", ignorefile.FileName).Msg("created root override file")
	}

	patterns, skipped := ignorefile.Load(ctx, g.cfg.Dir)
	for _, sk := range skipped {
		g.logger.Warningf("skipped override file %s: %v", sk.Path, sk.Err)
	}

	rules := g.rules.Clone()
	rules.Merge(patterns...)

	logger.Debug().
		Strs("extensions", rules.Extensions()).
		Strs("patterns", rules.Patterns()).
		Msg("effective exclusion rules")
	return rules
}

func (g *Generator) selectPaths(ctx context.Context, rules *exclude.RuleSet) []string {
	logger := zerolog.Ctx(ctx)

	tracked, err := g.lister.ListTrackedFiles(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("listing tracked files failed, continuing with none")
		g.logger.Warning("no tracked files: " + err.Error())
		return nil
	}

	kept := make([]string, 0, len(tracked))
	for _, p := range tracked {
		if reason, excluded := rules.Reason(p); excluded {
			logger.Debug().Str("file", p).Str("rule", reason).Msg("excluded")
			g.logger.LogFile(ctx, log.FileEvent{Path: p, Status: log.StatusExcluded, Reason: reason})
			continue
		}
		kept = append(kept, p)
	}

	logger.Debug().Int("tracked", len(tracked)).Int("selected", len(kept)).Msg("selected files")
	return kept
}

func (g *Generator) transform(ctx context.Context, paths []string) []Section {
	logger := zerolog.Ctx(ctx)

	sections := make([]Section, 0, len(paths))
	for _, p := range paths {
		content, err := g.readSource(p)
		if err != nil {
			logger.Warn().Err(err).Str("file", p).Msg("treating unreadable file as empty")
			g.logger.LogFile(ctx, log.FileEvent{Path: p, Status: log.StatusReadFailed, Err: err})
			continue
		}

		cleaned := g.cleaner.CleanAndRedact(content)
		if strings.TrimSpace(cleaned) == "" {
			logger.Debug().Str("file", p).Msg("skipping file with no content after cleaning")
			g.logger.LogFile(ctx, log.FileEvent{Path: p, Status: log.StatusEmpty})
			continue
		}

		s := Section{Path: p, Content: cleaned, Tokens: g.counter.Count(cleaned)}
		g.logger.LogFile(ctx, log.FileEvent{
			Path:       p,
			Status:     log.StatusIncluded,
			Tokens:     s.Tokens,
			Redactions: text.CountMarkers(cleaned),
		})
		sections = append(sections, s)
	}
	return sections
}

func (g *Generator) readSource(p string) (string, error) {
	data, err := os.ReadFile(g.cfg.Resolve(p))
	if err != nil {
		return "", errors.Errorf("reading %s: %w", p, err)
	}
	if !utf8.Valid(data) {
		return "", errors.Errorf("reading %s: not valid UTF-8", p)
	}
	return string(data), nil
}

// readTodo returns the todo file content, creating it empty when absent.
func (g *Generator) readTodo(ctx context.Context) (string, error) {
	path := g.cfg.Resolve(TodoFileName)

	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", errors.Errorf("reading todo file: %w", err)
	}

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return "", errors.Errorf("creating todo file: %w", err)
	}
	zerolog.Ctx(ctx).Info().Str("file", path).Msg("created empty todo file")
	return "", nil
}
