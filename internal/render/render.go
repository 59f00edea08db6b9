// Package render writes reports as human-readable tables.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/naka-gawa/github-insights/internal/domain"
)

type palette struct {
	red, green, yellow, bold func(...any) string
}

func newPalette(useColors bool) palette {
	if !useColors {
		return palette{red: fmt.Sprint, green: fmt.Sprint, yellow: fmt.Sprint, bold: fmt.Sprint}
	}
	return palette{
		red:    color.New(color.FgRed).SprintFunc(),
		green:  color.New(color.FgGreen).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		bold:   color.New(color.Bold).SprintFunc(),
	}
}

// Branches writes a branch overview, one row per branch.
func Branches(w io.Writer, report *domain.BranchOverviewReport, useColors bool) error {
	p := newPalette(useColors)
	if _, err := fmt.Fprintf(w, "%s/%s (default: %s, %d branches)\n",
		report.Owner, report.Repo, p.bold(report.DefaultBranch), report.TotalBranches); err != nil {
		return err
	}
	if len(report.Branches) == 0 {
		_, err := fmt.Fprintln(w, report.Message)
		return err
	}

	rows := make([][]string, 0, len(report.Branches))
	for _, b := range report.Branches {
		name := b.Name
		if b.IsDefault {
			name = p.bold(name + " *")
		}
		rows = append(rows, []string{
			name,
			b.Commit.SHA,
			b.Commit.Author,
			age(b.Commit.Date, p),
			pullRequest(b.PullRequest, p),
			b.Commit.Message,
		})
	}
	return writeTable(w, []any{"Branch", "Head", "Author", "Last Commit", "Pull Request", "Message"}, rows)
}

// ActiveBranches writes the branches with recent head commits.
func ActiveBranches(w io.Writer, report *domain.ActiveBranchesReport, useColors bool) error {
	p := newPalette(useColors)
	if _, err := fmt.Fprintf(w, "%s/%s: %d branches active in the last %d days\n",
		report.Owner, report.Repo, report.Count, report.Days); err != nil {
		return err
	}
	if len(report.Branches) == 0 {
		_, err := fmt.Fprintln(w, report.Message)
		return err
	}

	rows := make([][]string, 0, len(report.Branches))
	for _, b := range report.Branches {
		rows = append(rows, []string{b.Name, b.Commit.SHA, b.Commit.Author, age(b.Commit.Date, p), b.Commit.Message})
	}
	return writeTable(w, []any{"Branch", "Head", "Author", "Last Commit", "Message"}, rows)
}

// Health writes a health report: the checklist followed by issues and recommendations.
func Health(w io.Writer, report *domain.HealthReport, useColors bool) error {
	p := newPalette(useColors)
	status := report.Status
	switch {
	case report.Percentage >= 70:
		status = p.green(status)
	case report.Percentage >= 50:
		status = p.yellow(status)
	default:
		status = p.red(status)
	}
	if _, err := fmt.Fprintf(w, "%s/%s health: %d%% %s (%d/%d points)\n",
		report.Owner, report.Repo, report.Percentage, status, report.Score, report.MaxScore); err != nil {
		return err
	}

	check := func(ok bool) string {
		if ok {
			return p.green("yes")
		}
		return p.red("no")
	}
	updated := "unknown"
	if d := report.Checks.DaysSinceUpdate; d != nil {
		updated = strconv.Itoa(*d) + " days ago"
	}
	community := "unavailable"
	if c := report.CommunityHealthPercentage; c != nil {
		community = strconv.Itoa(*c) + "%"
	}
	rows := [][]string{
		{"README", check(report.Checks.HasReadme)},
		{"License", check(report.Checks.HasLicense)},
		{"Security policy", check(report.Checks.HasSecurityPolicy)},
		{"Contributing guidelines", check(report.Checks.HasContributing)},
		{"Code of conduct", check(report.Checks.HasCodeOfConduct)},
		{"CI/CD", check(report.Checks.HasCI)},
		{"Last update", updated},
		{"Community profile", community},
	}
	if err := writeTable(w, []any{"Check", "Result"}, rows); err != nil {
		return err
	}

	for _, section := range []struct {
		title string
		items []string
	}{
		{"Issues", report.Issues},
		{"Recommendations", report.Recommendations},
	} {
		if len(section.items) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n%s:\n", p.bold(section.title)); err != nil {
			return err
		}
		for _, item := range section.items {
			if _, err := fmt.Fprintf(w, "  - %s\n", item); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTable(w io.Writer, header []any, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header...)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func age(d domain.CommitDate, p palette) string {
	if d.DaysAgo == nil {
		return d.Raw
	}
	text := fmt.Sprintf("%s (%dd)", d.Formatted, *d.DaysAgo)
	switch {
	case *d.DaysAgo <= 7:
		return p.green(text)
	case *d.DaysAgo <= 90:
		return text
	default:
		return p.yellow(text)
	}
}

func pullRequest(pr *domain.BranchPullRequest, p palette) string {
	if pr == nil {
		return "-"
	}
	state := pr.State
	switch {
	case pr.Merged:
		state = "merged"
	case pr.State == "open":
		state = p.green(state)
	}
	return fmt.Sprintf("#%d %s", pr.Number, state)
}
