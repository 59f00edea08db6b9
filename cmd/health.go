package cmd

import (
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-insights/internal/domain"
	"github.com/naka-gawa/github-insights/internal/render"
)

var healthCmd = &cobra.Command{
	Use:   "health <owner> <repo>",
	Short: "Scores a repository against community and maintenance best practices",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		aggregator, err := newAggregator()
		if err != nil {
			return err
		}

		res := aggregator.RepositoryHealth(cmd.Context(), args[0], args[1])
		return printResult(cmd, res, render.Health)
	},
}

var depsCmd = &cobra.Command{
	Use:   "deps <owner> <repo>",
	Short: "Analyzes the dependency manifests at the top level of a repository",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		aggregator, err := newAggregator()
		if err != nil {
			return err
		}

		res := aggregator.DependencyAnalysis(cmd.Context(), args[0], args[1])
		return printResult[domain.DependencyReport](cmd, res, nil)
	},
}

func init() {
	rootCmd.AddCommand(healthCmd, depsCmd)
}
