package commands

// Root command for the Cobra CLI
// Converts a CSV file into a draw.io scatterplot; there are no subcommands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scatter-drawio/internal/config"
	"scatter-drawio/internal/converter"
	"scatter-drawio/internal/infra/log"
	"scatter-drawio/internal/scatter"
)

const Version = "1.0.5"

// reportedError marks errors already printed by the console logger.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported tells whether err was already shown to the user.
func Reported(err error) bool {
	var re *reportedError
	return errors.As(err, &re)
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scatter-drawio",
		Short: "Convert CSV (x, y, label) data into a draw.io scatterplot",
		Long: `scatter-drawio reads a CSV file with x, y and optional label columns and
writes a draw.io diagram with axes, tick labels and one marker per row.

Columns named "x", "y" and "label" are used when present; otherwise the
first, second and third columns are. Rows whose x or y is not a number are
skipped.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConvert,
	}

	// -h is the canvas height, so help only gets the long form
	cmd.Flags().Bool("help", false, "help for scatter-drawio")
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runConvert(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	cleanup, err := log.Setup(log.Config{
		Dir:     cfg.LogDir,
		Debug:   cfg.Debug,
		Console: cmd.ErrOrStderr(),
		NoColor: cfg.NoColor,
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed to initialize file logging: %v\n", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts, err := converter.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}

	log.LogInfo("Conversion started",
		zap.String("input", opts.Input),
		zap.String("output", opts.Output),
		zap.Int("width", opts.Canvas.Width),
		zap.Int("height", opts.Canvas.Height))

	res, err := converter.Run(ctx, opts)
	if err != nil {
		if errors.Is(err, scatter.ErrEmptyInput) {
			log.LogError("No valid data found in CSV", zap.String("input", opts.Input))
		} else {
			log.LogError("Conversion failed", zap.Error(err))
		}
		return &reportedError{err: err}
	}

	msg := fmt.Sprintf("Generated %s with %d points", res.Output, res.Records)
	if res.Dropped > 0 {
		msg += fmt.Sprintf(" (%d rows skipped)", res.Dropped)
	}
	log.LogSuccess(msg, zap.Int64("duration_ms", res.Duration.Milliseconds()))
	if res.Preview != "" {
		log.LogSuccess("Preview saved to " + res.Preview)
	}
	return nil
}
