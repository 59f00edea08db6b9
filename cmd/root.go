// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/naka-gawa/github-insights/internal/config"
	"github.com/naka-gawa/github-insights/internal/domain"
	"github.com/naka-gawa/github-insights/internal/gateway"
	"github.com/naka-gawa/github-insights/internal/metrics"
	"github.com/naka-gawa/github-insights/internal/usecase"
)

// Version is set by main.
var Version = "dev"

const (
	outputJSON  = "json"
	outputTable = "table"
)

// errReportFailed is returned after a failure report has been printed.
var errReportFailed = errors.New("report failed")

var (
	v      = viper.New()
	cfg    *config.Config
	logger = log.New(io.Discard, "", log.LstdFlags)
)

var rootCmd = &cobra.Command{
	Use:   "github-insights",
	Short: "Analytics reports over the GitHub API.",
	Long: `github-insights aggregates data from the GitHub API into analytics reports:
user and repository contributions, pull request review summaries, branch status,
repository health and dependency manifests.

Reports are printed as JSON. The same reports are available as MCP tools via "serve".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		config.Init(v, configFile)
		loaded, err := config.Load(v)
		if err != nil {
			return err
		}
		cfg = loaded
		if cfg.Verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd.Version = Version
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReportFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		cancel()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose/debug logging")
	flags.String("config", "", "Config file (default is ./.github-insights.yaml or $HOME/.github-insights.yaml)")
	flags.String("token", "", "GitHub token (default is $GITHUB_TOKEN)")
	flags.String("api-url", "", "GitHub Enterprise Server REST API URL, e.g. https://ghe.example.com/api/v3/")
	flags.StringP("output", "O", outputJSON, "Output format: json or table (table is available for branches and health)")

	_ = v.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = v.BindPFlag("token", flags.Lookup("token"))
	_ = v.BindPFlag("api_url", flags.Lookup("api-url"))
}

// newAggregator wires the gateway and the aggregator from the loaded configuration.
func newAggregator() (*usecase.Aggregator, error) {
	opts := cfg.GatewayOptions()
	opts.Instrument = metrics.InstrumentGitHub
	githubGateway, err := gateway.NewGitHubGateway(opts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return usecase.NewAggregator(githubGateway, logger), nil
}

// intFlag returns the flag value when it was given, fallback otherwise.
func intFlag(cmd *cobra.Command, name string, fallback int) int {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	n, _ := cmd.Flags().GetInt(name)
	return n
}

func parseNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid pull request number %q", arg)
	}
	return n, nil
}

// printResult writes res to stdout as JSON, or through table when the table output
// was requested and table is not nil. A failure is printed as JSON and reported
// through errReportFailed.
func printResult[T any](cmd *cobra.Command, res domain.Result[T], table func(io.Writer, *T, bool) error) error {
	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("output")
	switch format {
	case outputJSON, outputTable:
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if res.OK() && format == outputTable && table != nil {
		return table(out, res.Report, !color.NoColor)
	}

	// Marshal the result into a pretty-printed JSON string.
	jsonData, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	fmt.Fprintln(out, string(jsonData))
	if !res.OK() {
		return errReportFailed
	}
	return nil
}
