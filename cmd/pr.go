package cmd

import (
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-insights/internal/domain"
)

var prCmd = &cobra.Command{
	Use:   "pr <owner> <repo> <number>",
	Short: "Summarizes a pull request for review",
	Long: `Summarizes a pull request for review: file changes, commits, reviews, comments,
and derived insights such as complexity, review status, risk factors and recommendations.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := parseNumber(args[2])
		if err != nil {
			return err
		}
		aggregator, err := newAggregator()
		if err != nil {
			return err
		}

		res := aggregator.PullRequestReview(cmd.Context(), args[0], args[1], number)
		return printResult[domain.PRReviewReport](cmd, res, nil)
	},
}

func init() {
	rootCmd.AddCommand(prCmd)
}
