package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bindhushree2529/image-restore-lab/internal/batch"
	"github.com/Bindhushree2529/image-restore-lab/internal/engine"
	"github.com/Bindhushree2529/image-restore-lab/internal/profile"
	"github.com/Bindhushree2529/image-restore-lab/internal/report"
)

var (
	batchOutDir  string
	batchOp      string
	batchProfile string
	batchFormat  string
	batchWorkers int
	batchMaxDim  int
	batchQuality int
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir>",
	Short: "Enhance every image in a directory and write a report",
	Long: `Scans the input directory for images (png, jpg, jpeg, webp, gif, bmp,
tiff), runs the selected operation on each with a bounded worker pool,
and writes content-addressed outputs plus a JSON report.

Output filenames are content-addressed: <key>.<w>.<h>.<hash>.ext`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "./restorelab_out", "output directory")
	batchCmd.Flags().StringVar(&batchOp, "op", engine.OpEnhance,
		fmt.Sprintf("operation (%s)", strings.Join(engine.Operations(), ", ")))
	batchCmd.Flags().StringVarP(&batchProfile, "profile", "p", "",
		fmt.Sprintf("parameter preset (%s)", strings.Join(profile.Names(), ", ")))
	batchCmd.Flags().StringVar(&batchFormat, "format", "", "output format (png, jpeg, webp)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	batchCmd.Flags().IntVar(&batchMaxDim, "max-dim", 0, "bounding dimension (0 = default 1024)")
	batchCmd.Flags().IntVarP(&batchQuality, "quality", "q", 0, "lossy quality 1-100 (0 = default 90)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(batchOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	opts := cfg.Options()
	if batchProfile != "" {
		p := profile.Get(batchProfile).Options()
		opts.MaxDimension = p.MaxDimension
		opts.Format = p.Format
		opts.JPEGQuality = p.JPEGQuality
	}
	if batchFormat != "" {
		opts.Format = batchFormat
	}
	if batchMaxDim > 0 {
		opts.MaxDimension = batchMaxDim
	}
	if batchQuality > 0 {
		opts.JPEGQuality = batchQuality
	}
	workers := batchWorkers
	if workers == 0 {
		workers = cfg.Workers
	}

	runner := batch.New(batch.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Operation: batchOp,
		Profile:   batchProfile,
		Options:   opts,
		Workers:   workers,
		Log:       logger,
	})

	rep, err := runner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	reportPath := filepath.Join(absOutput, report.FileName)
	if err := report.WriteJSON(rep, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printBatchReport(rep, time.Since(start))
	return nil
}

func printBatchReport(rep *report.Report, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("  restorelab batch complete")
	fmt.Println()

	s := rep.Stats
	growth := float64(0)
	if s.TotalInputBytes > 0 {
		growth = float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
	}

	fmt.Printf("  Operation:   %s\n", rep.Operation)
	fmt.Printf("  Images:      %d\n", s.TotalImages)
	if s.TotalFailed > 0 {
		fmt.Printf("  Failed:      %d\n", s.TotalFailed)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size: %s  (%.1f%% of input)\n", formatBytes(s.TotalOutputBytes), growth)
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if rep.RunInfo != nil {
		fmt.Printf("  Workers:     %d\n", rep.RunInfo.Workers)
	}
	fmt.Println()

	// Top 10 heaviest inputs.
	if len(rep.Entries) > 0 {
		type entrySize struct {
			key     string
			inSize  int64
			outSize int64
		}
		var items []entrySize
		for key, e := range rep.Entries {
			items = append(items, entrySize{key, e.Original.Size, e.Result.Size})
		}
		sort.Slice(items, func(i, j int) bool {
			return items[i].inSize > items[j].inSize
		})
		n := len(items)
		if n > 10 {
			n = 10
		}
		fmt.Printf("  Top %d heaviest (original → enhanced):\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %8s → %8s\n",
				truncKey(it.key, 40),
				formatBytes(it.inSize),
				formatBytes(it.outSize),
			)
		}
		fmt.Println()
	}

	data, _ := json.Marshal(rep)
	fmt.Printf("  Report:      %s (%s)\n", report.FileName, formatBytes(int64(len(data))))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
