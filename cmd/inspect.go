package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Bindhushree2529/image-restore-lab/internal/report"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <out_dir_or_report>",
	Short: "Display statistics for a batch report",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for the report inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, report.FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return fmt.Errorf("parse report: %w", err)
	}

	printInspect(&rep)
	return nil
}

func printInspect(rep *report.Report) {
	fmt.Println()
	fmt.Printf("  Report version: %d\n", rep.Version)
	fmt.Printf("  Generated:      %s\n", rep.GeneratedAt)
	fmt.Printf("  Operation:      %s\n", rep.Operation)
	if rep.Profile != "" {
		fmt.Printf("  Profile:        %s\n", rep.Profile)
	}
	if rep.RunInfo != nil {
		fmt.Printf("  Workers:        %d\n", rep.RunInfo.Workers)
		fmt.Printf("  Max dimension:  %d\n", rep.RunInfo.MaxDimension)
		fmt.Printf("  Upscale factor: %d\n", rep.RunInfo.UpscaleFactor)
	}
	fmt.Println()

	s := rep.Stats
	fmt.Printf("  Total images:   %d\n", s.TotalImages)
	if s.TotalFailed > 0 {
		fmt.Printf("  Failed:         %d\n", s.TotalFailed)
	}
	fmt.Printf("  Input size:     %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:    %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Printf("  Size ratio:     %.1f%% of input\n", ratio)
	}
	fmt.Println()

	// Per-format breakdown.
	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, e := range rep.Entries {
		fs := formatStats[e.Result.Format]
		fs.count++
		fs.bytes += e.Result.Size
		formatStats[e.Result.Format] = fs
	}
	fmt.Println("  Format breakdown:")
	for _, f := range []string{"png", "jpeg", "webp"} {
		if fs, ok := formatStats[f]; ok {
			fmt.Printf("    %-6s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
		}
	}
	fmt.Println()

	// Dimension growth: output vs original longest side.
	dimStats := map[int]int{}
	for _, e := range rep.Entries {
		dimStats[e.Result.Width]++
	}
	var widths []int
	for w := range dimStats {
		widths = append(widths, w)
	}
	sort.Ints(widths)
	fmt.Println("  Output width breakdown:")
	for _, w := range widths {
		fmt.Printf("    %5dpx  %4d images\n", w, dimStats[w])
	}

	// Warnings.
	var warnings []string
	for key, e := range rep.Entries {
		if e.Result.Path == "" {
			warnings = append(warnings, fmt.Sprintf("entry %q has no output path", key))
		}
		if e.Result.Hash == "" {
			warnings = append(warnings, fmt.Sprintf("entry %q missing hash", key))
		}
	}
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
