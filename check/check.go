package check

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/gnoswap-labs/fitch/internal"
	tt "github.com/gnoswap-labs/fitch/internal/types"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// ScriptEngine replays proof scripts.
type ScriptEngine interface {
	Run(filename string) ([]tt.Issue, error)
	RunSource(name string, src []byte) []tt.Issue
	IgnoreRule(rule string)
	Fingerprint() string
}

// Processor checks a single script.
type Processor func(ScriptEngine, string) ([]tt.Issue, error)

// New loads the configuration at configurationPath and builds an engine
// from its rules.
func New(configurationPath string, logger *zap.Logger) (*internal.Engine, Config, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, config, err
	}
	return internal.NewEngine(config.Rules, logger), config, nil
}

// Options tune directory processing.
type Options struct {
	// Progress receives the progress bar. Nil disables it.
	Progress io.Writer
	// Workers bounds the number of scripts checked at once. Zero means
	// one per CPU.
	Workers int
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine ScriptEngine,
	paths []string,
	processor Processor,
	opts Options,
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor, opts)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return allIssues, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProcessPath checks path. Directories are walked and every script in them
// is checked concurrently; on cancellation the issues collected so far are
// returned with the context error.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine ScriptEngine,
	path string,
	processor Processor,
	opts Options,
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !HasScriptExtension(path) {
			if logger != nil {
				logger.Debug("Skipping non-script file", zap.String("file", path))
			}
			return nil, nil
		}
		return processor(engine, path)
	}

	files, err := collectScripts(path)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	sem := make(chan struct{}, workers)

	bar := newProgressBar(len(files), path, opts.Progress)

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		issues = make([]tt.Issue, 0)
	)

dispatch:
	for _, filePath := range files {
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			fileIssues, err := processor(engine, fp)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
			} else {
				mu.Lock()
				issues = append(issues, fileIssues...)
				mu.Unlock()
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}(filePath)
	}
	wg.Wait()

	if bar != nil {
		_ = bar.Finish()
	}

	SortIssues(issues)
	return issues, ctx.Err()
}

// ProcessFile checks one script file.
func ProcessFile(engine ScriptEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

// ProcessSource checks a script that is not stored in a file, such as
// standard input.
func ProcessSource(engine ScriptEngine, name string, source []byte) []tt.Issue {
	return engine.RunSource(name, source)
}

// CachedProcessor wraps processor so that unchanged scripts reuse the
// issues stored in cache.
func CachedProcessor(cache *internal.Cache, logger *zap.Logger, processor Processor) Processor {
	return func(engine ScriptEngine, filePath string) ([]tt.Issue, error) {
		fingerprint := engine.Fingerprint()
		if issues, ok := cache.Get(filePath, fingerprint); ok {
			if logger != nil {
				logger.Debug("Cache hit", zap.String("file", filePath))
			}
			return issues, nil
		}

		issues, err := processor(engine, filePath)
		if err != nil {
			return nil, err
		}
		if err := cache.Set(filePath, fingerprint, issues); err != nil && logger != nil {
			logger.Warn("Failed to update cache", zap.String("file", filePath), zap.Error(err))
		}
		return issues, nil
	}
}

// HasScriptExtension reports whether path names a proof script.
func HasScriptExtension(path string) bool {
	return filepath.Ext(path) == internal.ScriptExt
}

// SortIssues orders issues by file, then position.
func SortIssues(issues []tt.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

func collectScripts(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && HasScriptExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}
	return files, nil
}

func newProgressBar(total int, description string, w io.Writer) *progressbar.ProgressBar {
	if w == nil {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
