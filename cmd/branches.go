package cmd

import (
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-insights/internal/domain"
	"github.com/naka-gawa/github-insights/internal/render"
)

var branchesCmd = &cobra.Command{
	Use:   "branches <owner> <repo>",
	Short: "Lists branches with their head commit and pull request",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		aggregator, err := newAggregator()
		if err != nil {
			return err
		}
		limit := intFlag(cmd, "limit", cfg.BranchLimit)

		res := aggregator.BranchOverview(cmd.Context(), args[0], args[1], limit)
		return printResult(cmd, res, render.Branches)
	},
}

var activeBranchesCmd = &cobra.Command{
	Use:   "active <owner> <repo>",
	Short: "Lists branches with a head commit inside the lookback window",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		aggregator, err := newAggregator()
		if err != nil {
			return err
		}
		days := intFlag(cmd, "days", cfg.Days)

		res := aggregator.ActiveBranches(cmd.Context(), args[0], args[1], days)
		return printResult(cmd, res, render.ActiveBranches)
	},
}

var compareBranchesCmd = &cobra.Command{
	Use:   "compare <owner> <repo> <base> <head>",
	Short: "Compares two branches",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		aggregator, err := newAggregator()
		if err != nil {
			return err
		}

		res := aggregator.CompareBranches(cmd.Context(), args[0], args[1], args[2], args[3])
		return printResult[domain.BranchComparisonReport](cmd, res, nil)
	},
}

func init() {
	rootCmd.AddCommand(branchesCmd)
	branchesCmd.AddCommand(activeBranchesCmd, compareBranchesCmd)
	branchesCmd.Flags().IntP("limit", "l", 0, "Maximum number of branches to inspect, up to 100 (default from config, 10)")
	activeBranchesCmd.Flags().IntP("days", "d", 0, "Lookback window in days (default from config, 30)")
}
