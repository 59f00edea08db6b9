package cmd

import (
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-insights/internal/domain"
)

var repoCmd = &cobra.Command{
	Use:   "repo <owner> <repo>",
	Short: "Analyzes contributors, commits, pull requests and issues of a repository",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		aggregator, err := newAggregator()
		if err != nil {
			return err
		}
		days := intFlag(cmd, "days", cfg.Days)

		res := aggregator.RepositoryContribution(cmd.Context(), args[0], args[1], days)
		return printResult[domain.RepositoryContributionReport](cmd, res, nil)
	},
}

func init() {
	rootCmd.AddCommand(repoCmd)
	repoCmd.Flags().IntP("days", "d", 0, "Lookback window in days (default from config, 30)")
}
