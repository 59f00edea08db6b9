// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-insights/internal/domain"
	"github.com/naka-gawa/github-insights/internal/gateway"
)

// Aggregator is the use case for building GitHub analytics reports.
// It orchestrates the fetching and combining of data.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	now     func() time.Time
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// run builds one report. The token check happens before anything else, and any error
// or panic raised by build becomes the failure arm of the result.
func run[T any](ctx context.Context, a *Aggregator, operation string, build func(context.Context) (*T, error)) (res domain.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Printf("Usecase: recovered panic while %s: %v", operation, r)
			res = domain.Fail[T](&domain.Failure{
				Kind:    domain.KindUnexpected,
				Message: "Exception occurred while " + operation,
				Details: fmt.Sprint(r),
			})
		}
	}()

	if err := a.fetcher.Ready(); err != nil {
		return domain.Fail[T](domain.Classify(operation, err))
	}
	report, err := build(ctx)
	if err != nil {
		a.logger.Printf("Usecase: failed while %s: %v", operation, err)
		return domain.Fail[T](domain.Classify(operation, err))
	}
	return domain.Succeed(report)
}

// window selects items timestamped strictly after now minus the given days.
type window struct {
	days   int
	cutoff time.Time
}

func (a *Aggregator) window(days int) window {
	if days < 0 {
		days = 0
	}
	return window{days: days, cutoff: a.now().Add(-time.Duration(days) * 24 * time.Hour)}
}

func (w window) contains(t time.Time) bool {
	return !t.IsZero() && t.After(w.cutoff)
}

// perDay divides count by the window length, 0 for an empty window.
func (w window) perDay(count int) float64 {
	return ratio(count, w.days)
}

// ratio returns a/b rounded to two decimals, 0 when b is not positive.
func ratio(a, b int) float64 {
	if b <= 0 {
		return 0
	}
	return round2(float64(a) / float64(b))
}

func round2(v float64) float64 {
	r, err := stats.Round(v, 2)
	if err != nil {
		return 0
	}
	return r
}

// counter counts keys and remembers the order they were first seen in,
// so rankings break ties by first appearance.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string, n int) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

func (c *counter) len() int {
	return len(c.order)
}

// top returns the n highest counts; n <= 0 returns all of them.
func (c *counter) top(n int) []domain.NamedCount {
	ranked := make([]domain.NamedCount, 0, len(c.order))
	for _, k := range c.order {
		ranked = append(ranked, domain.NamedCount{Name: k, Count: c.counts[k]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// first returns the highest-counted key, nil when nothing was counted.
func (c *counter) first() *string {
	top := c.top(1)
	if len(top) == 0 {
		return nil
	}
	return &top[0].Name
}

// snapshot returns a copy of the counts that is never nil.
func (c *counter) snapshot() map[string]int {
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, "\r")
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func summarizeCommit(c domain.Commit) domain.CommitSummary {
	return domain.CommitSummary{
		SHA:     shortSHA(c.SHA),
		Author:  orUnknown(c.Author),
		Message: firstLine(c.Message),
		Date:    formatTime(c.Timestamp),
		URL:     c.URL,
	}
}
