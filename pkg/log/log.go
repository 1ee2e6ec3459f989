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

// Package log prints the human progress log of a verbose run and mirrors
// every line into zerolog.
package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 40 // Base width for filename
	statusWidth  = 10 // Width for status text
	detailsWidth = 12 // Width for the trailing detail column
)

// 🎯 FileStatus is what happened to one candidate file.
type FileStatus string

const (
	StatusIncluded   FileStatus = "included"
	StatusEmpty      FileStatus = "empty"
	StatusExcluded   FileStatus = "excluded"
	StatusReadFailed FileStatus = "unreadable"
)

// 🎯 FileEvent describes one file passing through the pipeline.
type FileEvent struct {
	Path       string     // repository-relative path
	Status     FileStatus // outcome for this file
	Tokens     int        // tokens in the emitted section, when included
	Redactions int        // redaction markers in the emitted section
	Reason     string     // matching rule, when excluded
	Err        error      // read error, when unreadable
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	events  []FileEvent
}

// 🏭 New creates a new logger writing console lines to console and mirroring
// them into zlog.
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// Discard returns a logger that prints and records nothing.
func Discard() *Logger {
	return New(io.Discard, zerolog.Nop())
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func (l *Logger) formatFileEvent(ev FileEvent) string {
	var symbol rune
	var symbolColor color.Attribute
	var details string
	switch ev.Status {
	case StatusIncluded:
		symbol = '✓'
		symbolColor = color.FgGreen
		details = fmt.Sprintf("%d tokens", ev.Tokens)
		if ev.Redactions > 0 {
			details += fmt.Sprintf(", %d redacted", ev.Redactions)
		}
	case StatusEmpty:
		symbol = '•'
		symbolColor = color.FgCyan
	case StatusExcluded:
		symbol = '-'
		symbolColor = color.FgYellow
		details = ev.Reason
	case StatusReadFailed:
		symbol = '✗'
		symbolColor = color.FgRed
		if ev.Err != nil {
			details = ev.Err.Error()
		}
	default:
		symbol = '?'
		symbolColor = color.Faint
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, ev.Path),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", statusWidth, string(ev.Status))),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", detailsWidth, details)))
}

// 📝 LogFile logs a file event
func (l *Logger) LogFile(ctx context.Context, ev FileEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, ev)

	fmt.Fprintln(l.console, l.formatFileEvent(ev))

	evt := l.zlog.Info()
	if ev.Status == StatusReadFailed {
		evt = l.zlog.Warn().Err(ev.Err)
	}
	evt.
		Str("file", ev.Path).
		Str("status", string(ev.Status)).
		Int("tokens", ev.Tokens).
		Int("redactions", ev.Redactions).
		Str("reason", ev.Reason).
		Msg("file processed")
}

// 📝 Summary logs the closing line of a run, counting the files the run
// left out since the last Header
func (l *Logger) Summary(output string, sections, tokens int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	skipped := 0
	for _, ev := range l.events {
		if ev.Status != StatusIncluded {
			skipped++
		}
	}

	line := fmt.Sprintf("%s %s %s %s",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(output),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d files, %d tokens", sections, tokens))
	if skipped > 0 {
		line += fmt.Sprintf(" %s %s",
			color.New(color.Faint).Sprint("•"),
			color.New(color.Faint).Sprintf("%d skipped", skipped))
	}
	fmt.Fprintln(l.console, line)

	l.zlog.Info().
		Str("output", output).
		Int("sections", sections).
		Int("tokens", tokens).
		Int("skipped", skipped).
		Msg("document written")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
	name := color.New(color.Bold, color.FgCyan).Sprint("toak")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
