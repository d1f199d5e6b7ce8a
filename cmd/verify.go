package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Bindhushree2529/image-restore-lab/internal/report"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <report_path>",
	Short: "Validate a batch report and check referenced files exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(_ *cobra.Command, args []string) error {
	reportPath := args[0]

	data, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return fmt.Errorf("parse report: %w", err)
	}

	baseDir := filepath.Dir(reportPath)
	errors := verifyReport(&rep, baseDir)

	if len(errors) == 0 {
		fmt.Println("  ✓ Report is valid")
		fmt.Printf("  ✓ %d entries — all files present\n", rep.Stats.TotalImages)
		return nil
	}

	fmt.Printf("  ✗ Report has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("verification failed with %d errors", len(errors))
}

func verifyReport(rep *report.Report, baseDir string) []string {
	var errs []string

	if rep.Version != report.SupportedReportVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", rep.Version))
	}
	if rep.Operation == "" {
		errs = append(errs, "missing operation")
	}

	seenPaths := map[string]bool{}
	for key, e := range rep.Entries {
		if e.Original.Width <= 0 || e.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("entry %q: invalid original dimensions %dx%d",
				key, e.Original.Width, e.Original.Height))
		}
		if e.Result.Width <= 0 || e.Result.Height <= 0 {
			errs = append(errs, fmt.Sprintf("entry %q: invalid result dimensions %dx%d",
				key, e.Result.Width, e.Result.Height))
		}
		if e.Result.Format == "" {
			errs = append(errs, fmt.Sprintf("entry %q: empty result format", key))
		}
		if e.Result.Hash == "" {
			errs = append(errs, fmt.Sprintf("entry %q: missing hash", key))
		}
		if e.Result.Path == "" {
			errs = append(errs, fmt.Sprintf("entry %q: missing path", key))
			continue
		}

		if seenPaths[e.Result.Path] {
			errs = append(errs, fmt.Sprintf("entry %q: duplicate path %q", key, e.Result.Path))
		}
		seenPaths[e.Result.Path] = true

		fullPath := filepath.Join(baseDir, e.Result.Path)
		info, err := os.Stat(fullPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("entry %q: file not found: %s", key, e.Result.Path))
		} else if e.Result.Size > 0 && info.Size() != e.Result.Size {
			errs = append(errs, fmt.Sprintf("entry %q: size mismatch: report=%d, disk=%d",
				key, e.Result.Size, info.Size()))
		}
	}

	// Verify stats consistency.
	if rep.Stats.TotalImages != len(rep.Entries) {
		errs = append(errs, fmt.Sprintf("stats.total_images mismatch: %d != %d",
			rep.Stats.TotalImages, len(rep.Entries)))
	}

	return errs
}
