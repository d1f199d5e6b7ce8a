package cmd

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Bindhushree2529/image-restore-lab/internal/config"
	"github.com/Bindhushree2529/image-restore-lab/internal/logging"
)

var (
	version = "0.1.0"
	verbose bool
	envFile string

	logger zerolog.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "restorelab",
	Short: "Local image enhancement pipeline",
	Long: `restorelab — enhances images entirely on your machine: fits oversized
inputs into a 1024px bounding box, doubles the resolution with Lanczos
resampling, and applies a fixed brightness/contrast lift.

Also ships sharpen, brighten and denoise filters, a parallel batch mode
with a JSON report, and content-addressed output filenames.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(verbose)
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		return nil
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "env file with RESTORELAB_* defaults")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"restorelab %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}
