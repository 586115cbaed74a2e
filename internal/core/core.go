// Package core ties parsing, minification, output and history together.
package core

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"minifyall/internal/clock"
	"minifyall/internal/config"
	"minifyall/internal/gitutil"
	"minifyall/internal/logger"
	"minifyall/internal/minifier"
	"minifyall/internal/outpath"
	"minifyall/internal/parser"
	"minifyall/internal/rewrite"
	"minifyall/internal/sizes"
	"minifyall/internal/state"
	"minifyall/pkg/document"
)

// Target selects where minified output goes.
type Target int

const (
	// TargetNewFile writes a sibling file named with the language prefix.
	TargetNewFile Target = iota
	// TargetInPlace overwrites the source file.
	TargetInPlace
	// TargetStdout only returns the output.
	TargetStdout
)

func (t Target) String() string {
	switch t {
	case TargetInPlace:
		return "in-place"
	case TargetStdout:
		return "stdout"
	default:
		return "new-file"
	}
}

// Result describes one minified file.
type Result struct {
	Path       string
	OutputPath string // empty for TargetStdout
	Language   document.Language
	Output     string
	Sizes      sizes.Report
	Entry      state.HistoryEntry
}

// Service minifies files according to the current settings.
// It is safe for concurrent use; Reconfigure swaps settings atomically.
type Service struct {
	mu       sync.RWMutex
	settings *config.Settings
	minifier *minifier.Minifier

	history HistoryStore
	clock   clock.Clock
}

// Option customizes a Service.
type Option func(*Service)

// WithClock sets the clock used to timestamp history entries.
func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// NewService creates a Service. A nil history disables recording.
func NewService(settings *config.Settings, history HistoryStore, opts ...Option) *Service {
	s := &Service{history: history, clock: clock.RealClock{}}
	for _, opt := range opts {
		opt(s)
	}
	s.Reconfigure(settings)
	return s
}

// Reconfigure replaces the settings, e.g. after the config file changed.
func (s *Service) Reconfigure(settings *config.Settings) {
	m := minifier.New(minifier.OptionsFromSettings(settings))
	s.mu.Lock()
	s.settings = settings
	s.minifier = m
	s.mu.Unlock()
}

func (s *Service) current() (*config.Settings, *minifier.Minifier) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, s.minifier
}

// Accepts reports whether path would be minified: its language is supported
// and enabled, and it is not itself a minified output.
func (s *Service) Accepts(path string) bool {
	settings, _ := s.current()
	lang := document.LanguageForExt(filepath.Ext(path))
	if !minifier.Supported(lang) || settings.DisableLanguages.Disabled(lang) {
		return false
	}
	return !outpath.IsMinified(path, settings.Prefixes.For(lang))
}

// OutputPathFor returns where TargetNewFile would write the output for path.
func (s *Service) OutputPathFor(path string, lang document.Language) string {
	settings, _ := s.current()
	return outpath.NewFilePath(path, settings.Prefixes.For(lang))
}

// MinifyDocument minifies an in-memory document without touching disk or history.
func (s *Service) MinifyDocument(doc *document.Document) (string, sizes.Report, error) {
	_, m := s.current()
	out, err := m.Minify(doc)
	if err != nil {
		return "", sizes.Report{}, err
	}
	report, err := sizes.Measure(doc.Text(), out)
	if err != nil {
		return "", sizes.Report{}, err
	}
	return out, report, nil
}

// MinifyFile minifies path and sends the output to target.
func (s *Service) MinifyFile(ctx context.Context, path string, target Target) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := parser.ParseDocument(path)
	if err != nil {
		return nil, err
	}
	out, report, err := s.MinifyDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("minify %s: %w", path, err)
	}

	res := &Result{Path: path, Language: doc.Language, Output: out, Sizes: report}
	switch target {
	case TargetInPlace:
		res.OutputPath = path
	case TargetNewFile:
		res.OutputPath = s.OutputPathFor(path, doc.Language)
	}
	if res.OutputPath != "" {
		if err := writeLike(path, res.OutputPath, []byte(out)); err != nil {
			return nil, err
		}
	}
	logger.Debug("minified file", "path", path, "target", target.String(), "language", string(doc.Language),
		"original", report.Original, "minified", report.Minified)

	return res, s.record(res)
}

// MinifySelection replaces lines start..end (1-based, inclusive) of path with
// their minified text on a single line and writes the file back.
func (s *Service) MinifySelection(ctx context.Context, path string, start, end int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := parser.ParseDocument(path)
	if err != nil {
		return nil, err
	}
	if start < 1 || end < start || end > len(doc.Lines) {
		return nil, fmt.Errorf("%w: %d-%d in %s (%d lines)", parser.ErrInvalidRange, start, end, path, len(doc.Lines))
	}

	selection := &document.Document{Path: path, Language: doc.Language, Lines: doc.Lines[start-1 : end]}
	out, report, err := s.MinifyDocument(selection)
	if err != nil {
		return nil, fmt.Errorf("minify %s lines %d-%d: %w", path, start, end, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	rewritten, err := rewrite.ReplaceRange(content, start-1, end-1, []string{out})
	if err != nil {
		return nil, fmt.Errorf("rewrite %s: %w", path, err)
	}
	if err := writeLike(path, path, rewritten); err != nil {
		return nil, err
	}

	res := &Result{Path: path, OutputPath: path, Language: doc.Language, Output: out, Sizes: report}
	return res, s.record(res)
}

// MinifyDir minifies every accepted file under dir into new files. With
// gitOnly, only files tracked by git are considered. Files that fail are
// reported together in the returned error; the others are still written.
func (s *Service) MinifyDir(ctx context.Context, dir string, gitOnly bool) ([]*Result, error) {
	var files []string
	if gitOnly {
		tracked, err := gitutil.ListTrackedFiles(ctx, dir)
		if err != nil {
			return nil, err
		}
		files = tracked
	} else {
		walked, err := walkFiles(dir)
		if err != nil {
			return nil, err
		}
		files = walked
	}

	var (
		results []*Result
		errs    []error
	)
	for _, f := range files {
		if !s.Accepts(f) {
			continue
		}
		res, err := s.MinifyFile(ctx, f, TargetNewFile)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return results, err
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// History returns the recorded history, oldest first.
func (s *Service) History() (state.History, error) {
	if s.history == nil {
		return state.History{}, nil
	}
	return s.history.Load()
}

func (s *Service) record(res *Result) error {
	res.Entry = state.NewEntry(res.Path, res.OutputPath, res.Language, res.Sizes, s.clock.Now())
	if s.history == nil {
		return nil
	}
	if err := s.history.Append(res.Entry); err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

// walkFiles lists regular files under dir, skipping hidden directories and node_modules.
func walkFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return files, nil
}

// writeLike writes data to dst using the permissions of src.
func writeLike(src, dst string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(src); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(dst, data, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}
