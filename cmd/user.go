package cmd

import (
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-insights/internal/domain"
)

var userCmd = &cobra.Command{
	Use:   "user <username>",
	Short: "Analyzes a user's repositories, activity, languages and stars",
	Long: `Analyzes a GitHub user's repositories, recent activity, languages, collaboration
and starred repositories within a lookback window, and outputs the result in JSON format.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		aggregator, err := newAggregator()
		if err != nil {
			return err
		}
		days := intFlag(cmd, "days", cfg.Days)
		includePrivate, _ := cmd.Flags().GetBool("include-private")

		res := aggregator.UserContribution(cmd.Context(), args[0], days, includePrivate)
		return printResult[domain.UserContributionReport](cmd, res, nil)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.Flags().IntP("days", "d", 0, "Lookback window in days (default from config, 30)")
	userCmd.Flags().Bool("include-private", false, "Include private repositories and events when the token belongs to the user")
}
