package cmd

import (
	"bytes"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-insights/internal/domain"
)

func newTestCommand(output string) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	cmd.Flags().String("output", output, "")
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestPrintResult(t *testing.T) {
	report := &domain.HealthReport{Owner: "o", Repo: "r", Percentage: 80, Status: "Good"}
	table := func(w io.Writer, r *domain.HealthReport, _ bool) error {
		_, err := io.WriteString(w, "table for "+r.Owner+"/"+r.Repo)
		return err
	}

	t.Run("json", func(t *testing.T) {
		cmd, buf := newTestCommand(outputJSON)
		require.NoError(t, printResult(cmd, domain.Succeed(report), table))
		assert.Contains(t, buf.String(), `"status": "Good"`)
	})

	t.Run("table", func(t *testing.T) {
		cmd, buf := newTestCommand(outputTable)
		require.NoError(t, printResult(cmd, domain.Succeed(report), table))
		assert.Equal(t, "table for o/r", buf.String())
	})

	t.Run("table falls back to json without a renderer", func(t *testing.T) {
		cmd, buf := newTestCommand(outputTable)
		require.NoError(t, printResult[domain.HealthReport](cmd, domain.Succeed(report), nil))
		assert.Contains(t, buf.String(), `"percentage": 80`)
	})

	t.Run("failure is printed and reported", func(t *testing.T) {
		cmd, buf := newTestCommand(outputTable)
		res := domain.Fail[domain.HealthReport](&domain.Failure{Kind: domain.KindConfiguration, Message: "GitHub token not configured"})

		err := printResult(cmd, res, table)

		assert.ErrorIs(t, err, errReportFailed)
		assert.Contains(t, buf.String(), `"error": "GitHub token not configured"`)
	})

	t.Run("unknown format", func(t *testing.T) {
		cmd, _ := newTestCommand("yaml")
		assert.ErrorContains(t, printResult(cmd, domain.Succeed(report), table), `unknown output format "yaml"`)
	})
}

func TestParseNumber(t *testing.T) {
	n, err := parseNumber("42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	for _, arg := range []string{"0", "-3", "abc", ""} {
		_, err := parseNumber(arg)
		assert.Error(t, err, "arg %q", arg)
	}
}
