package commands

import (
	"github.com/spf13/cobra"

	"upvotes_analyzer/pkg/logger"
)

func NewComputeCommand() *cobra.Command {
	var opts inputOptions

	cmd := &cobra.Command{
		Use:     "compute",
		Short:   "Print the metric of every window",
		Example: "analyzer compute -k 3 -v 1,2,3,1,1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.analyzer()
			if err != nil {
				return err
			}
			req, err := opts.request(cmd)
			if err != nil {
				return err
			}
			metrics, err := a.Compute(cmd.Context(), req.N, req.K, req.Values)
			if err != nil {
				return err
			}
			logger.Info("compute: n=%d k=%d mode=%s windows=%d", req.N, req.K, a.Mode(), len(metrics))

			res := computeResult{N: req.N, K: req.K, Mode: string(a.Mode()), Values: req.Values, Metrics: metrics}
			return writeOutput(cmd.OutOrStdout(), opts.output, res, res.text)
		},
	}
	opts.bind(cmd)
	return cmd
}

func NewBreakdownCommand() *cobra.Command {
	var opts inputOptions

	cmd := &cobra.Command{
		Use:     "breakdown",
		Short:   "Print non-decreasing and non-increasing counts of every window",
		Example: "analyzer breakdown -k 3 -v 1,2,3,1,1 -o json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.analyzer()
			if err != nil {
				return err
			}
			req, err := opts.request(cmd)
			if err != nil {
				return err
			}
			windows, err := a.Breakdown(cmd.Context(), req.N, req.K, req.Values)
			if err != nil {
				return err
			}
			for _, w := range windows {
				logger.Debug("window %d [%d,%d): non-decreasing=%d non-increasing=%d",
					w.Index, w.Start, w.End, w.NonDecreasing, w.NonIncreasing)
			}

			res := breakdownResult{N: req.N, K: req.K, Mode: string(a.Mode()), Windows: windows}
			return writeOutput(cmd.OutOrStdout(), opts.output, res, res.text(req.Values))
		},
	}
	opts.bind(cmd)
	return cmd
}
