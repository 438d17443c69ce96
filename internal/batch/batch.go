// Package batch checks many OverpassQL files concurrently, adapting
// the teacher's lint.ProcessPath worker-pool shape (bounded semaphore,
// sync.WaitGroup, per-file goroutine) to this repository's
// single-query Checker instead of the teacher's multi-rule lint
// engine.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/opql-tools/opqlcheck/checker"
)

var desiredExtensions = map[string]bool{
	".overpassql": true,
	".oql":        true,
}

// FileResult pairs one file's path with the check it produced, or the
// I/O error that kept it from being checked at all.
type FileResult struct {
	Path   string
	Result checker.CheckResult
	Err    error
}

// Run expands paths (files, directories, or glob patterns) into a
// sorted file list and checks every match concurrently, bounded to
// runtime.NumCPU() workers. A progress bar is shown only when
// showProgress is set and stdout is a terminal, mirroring the
// teacher's own TTY-gated progress display.
func Run(ctx context.Context, logger *zap.Logger, paths []string, showProgress bool) ([]FileResult, error) {
	files, err := expand(paths)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, len(files))
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup

	var bar *progressbar.ProgressBar
	if showProgress && len(files) > 0 && isatty.IsTerminal(os.Stdout.Fd()) {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("checking"),
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

	c := checker.New()
	for i, f := range files {
		select {
		case <-ctx.Done():
			wg.Wait()
			return results, ctx.Err()
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			data, err := os.ReadFile(path)
			if err != nil {
				if logger != nil {
					logger.Error("error reading file", zap.String("file", path), zap.Error(err))
				}
				results[i] = FileResult{Path: path, Err: err}
			} else {
				results[i] = FileResult{Path: path, Result: c.CheckSyntax(string(data))}
			}
			if bar != nil {
				bar.Add(1) // progressbar/v3 guards its internal state with a mutex
			}
		}(i, f)
	}
	wg.Wait()

	return results, nil
}

func expand(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			matches, globErr := filepath.Glob(p)
			if globErr == nil && len(matches) > 0 {
				files = append(files, matches...)
				continue
			}
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		walkErr := filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && desiredExtensions[filepath.Ext(path)] {
				files = append(files, path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}
	sort.Strings(files)
	return files, nil
}
