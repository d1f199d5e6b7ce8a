// Package batch applies an enhancement operation to every image in a
// directory tree, writing content-addressed outputs and a JSON report.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Bindhushree2529/image-restore-lab/internal/engine"
	"github.com/Bindhushree2529/image-restore-lab/internal/hasher"
	"github.com/Bindhushree2529/image-restore-lab/internal/report"
	"github.com/Bindhushree2529/image-restore-lab/internal/resource"
)

// Config holds all parameters for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Operation string
	Profile   string
	Options   engine.Options
	Workers   int
	Log       zerolog.Logger
}

// Runner orchestrates a batch enhancement run.
type Runner struct {
	cfg Config
}

// New creates a configured runner.
func New(cfg Config) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Operation == "" {
		cfg.Operation = engine.OpEnhance
	}
	return &Runner{cfg: cfg}
}

type processResult struct {
	key   string
	entry report.Entry
	err   error
}

// Run scans the input directory, enhances every image with a bounded
// worker pool, and returns the collected report. Individual failures
// are logged and counted; the run only fails when no image succeeds.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	// Validate options up front and resolve their effective values, so
	// the report reflects what the workers actually ran with.
	probe, err := engine.New(r.cfg.Options, r.cfg.Log)
	if err != nil {
		return nil, err
	}
	r.cfg.Options = probe.Options()

	sources, err := Scan(r.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", r.cfg.InputDir)
	}
	r.cfg.Log.Info().
		Int("images", len(sources)).
		Int("workers", r.cfg.Workers).
		Str("op", r.cfg.Operation).
		Msg("batch start")

	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, r.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx] = r.process(ctx, s)
		}(i, src)
	}
	wg.Wait()

	rep := report.New(r.cfg.Operation)
	rep.Profile = r.cfg.Profile

	opts := r.cfg.Options
	var failed int
	for _, res := range results {
		if res.err != nil {
			failed++
			r.cfg.Log.Error().Str("key", res.key).Err(res.err).Msg("image failed")
			continue
		}
		rep.Entries[res.key] = res.entry
	}
	if failed == len(sources) {
		return nil, fmt.Errorf("all %d images failed to process", failed)
	}
	if failed > 0 {
		r.cfg.Log.Warn().Int("failed", failed).Int("total", len(sources)).Msg("partial failures")
	}

	rep.RunInfo = &report.RunInfo{
		Workers:       r.cfg.Workers,
		MaxDimension:  opts.MaxDimension,
		UpscaleFactor: opts.UpscaleFactor,
	}
	rep.Stats.TotalFailed = failed
	rep.ComputeStats()
	return rep, nil
}

// process enhances a single source image and writes the output.
// Each invocation gets its own Enhancer: an Enhancer admits one run
// at a time.
func (r *Runner) process(ctx context.Context, src Source) processResult {
	result := processResult{key: src.Key}

	enh, err := engine.New(r.cfg.Options, r.cfg.Log)
	if err != nil {
		result.err = err
		return result
	}

	in, err := resource.FromFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}
	origW, origH, err := in.Bounds()
	if err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}

	out, err := enh.Run(ctx, r.cfg.Operation, in)
	if err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}
	outW, outH, err := out.Bounds()
	if err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}

	// Ensure output subdirectory exists.
	keyDir := filepath.Dir(src.Key)
	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(r.cfg.OutputDir, keyDir), 0o755); err != nil {
			result.err = fmt.Errorf("mkdir %s: %w", keyDir, err)
			return result
		}
	}

	data := out.Bytes()
	contentHash := hasher.ContentHash(data, 16)
	format := formatFromMIME(out.MIME())

	// Content-addressed filename: key.w.h.hash.ext
	fileName := fmt.Sprintf("%s.%d.%d.%s.%s",
		filepath.Base(src.Key), outW, outH, contentHash[:8], format)
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

	outPath := filepath.Join(r.cfg.OutputDir, relPath)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", relPath, err)
		return result
	}

	result.entry = report.Entry{
		Original: report.ImageInfo{
			Width:  origW,
			Height: origH,
			Format: src.Format,
			Size:   src.Size,
		},
		Result: report.Result{
			Width:  outW,
			Height: outH,
			Format: format,
			Size:   out.Size(),
			Hash:   contentHash,
			Path:   relPath,
		},
	}
	return result
}

// formatFromMIME maps "image/png" to "png" etc.
func formatFromMIME(mime string) string {
	f := strings.TrimPrefix(mime, "image/")
	if f == "" {
		return "bin"
	}
	return f
}
