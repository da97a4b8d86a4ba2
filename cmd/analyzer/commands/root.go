package commands

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"upvotes_analyzer/internal/analyzer"
	"upvotes_analyzer/pkg/logger"
)

const (
	exitFailure      = 1
	exitInvalidInput = 2
)

func NewRootCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "analyzer",
		Short:         "Non-decreasing minus non-increasing subranges for every sliding window",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.SetServiceName("upvotes-analyzer")
			return logger.Init(logLevel)
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "debug|info|warn|error")

	cmd.AddCommand(
		NewComputeCommand(),
		NewBreakdownCommand(),
		NewServeCommand(),
	)
	return cmd
}

func Execute() {
	err := NewRootCommand().Execute()
	if err == nil {
		return
	}
	logger.Sync()

	switch {
	case errors.Is(err, analyzer.ErrInvariantViolation):
		// дефект расчёта: не ретраим и не правим результат
		if logger.FatalLogger != nil {
			logger.Fatal("%v", err)
		}
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(exitFailure)
	case errors.Is(err, analyzer.ErrInvalidInput):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitInvalidInput)
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitFailure)
	}
}
