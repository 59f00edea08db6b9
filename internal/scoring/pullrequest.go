package scoring

import (
	"path"
	"strings"

	"github.com/naka-gawa/github-insights/internal/domain"
)

// LargeFileThreshold is the number of changed lines above which a file counts as large.
const LargeFileThreshold = 100

var extensionLanguages = map[string]string{
	"py":    "Python",
	"js":    "JavaScript",
	"ts":    "TypeScript",
	"java":  "Java",
	"cpp":   "C++",
	"c":     "C",
	"cs":    "C#",
	"php":   "PHP",
	"rb":    "Ruby",
	"go":    "Go",
	"rs":    "Rust",
	"swift": "Swift",
	"kt":    "Kotlin",
	"html":  "HTML",
	"css":   "CSS",
	"scss":  "SCSS",
	"sass":  "Sass",
	"json":  "JSON",
	"xml":   "XML",
	"yaml":  "YAML",
	"yml":   "YAML",
	"md":    "Markdown",
	"sh":    "Shell",
	"sql":   "SQL",
}

// Extension returns the lower-cased text after the last dot of the file's base name.
func Extension(filename string) (string, bool) {
	base := path.Base(filename)
	idx := strings.LastIndex(base, ".")
	if idx < 0 || idx == len(base)-1 {
		return "", false
	}
	return strings.ToLower(base[idx+1:]), true
}

// DetectLanguage maps a filename to a language name, "Unknown" when the extension is
// absent or not in the table.
func DetectLanguage(filename string) string {
	ext, ok := Extension(filename)
	if !ok {
		return "Unknown"
	}
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return "Unknown"
}

// PRSignals are the already-computed facts about a pull request that insights derive from.
type PRSignals struct {
	TotalFiles     int
	TotalAdditions int
	TotalDeletions int
	Languages      int
	LargeFiles     int
	Commits        int
	Reviews        int
	Description    string
	Mergeable      *bool
	Filenames      []string
}

// Complexity scores a pull request on a 0-100 scale and labels it.
func Complexity(s PRSignals) domain.Complexity {
	score := 0
	factors := []string{}

	switch {
	case s.TotalFiles > 20:
		score += 30
		factors = append(factors, "High file count")
	case s.TotalFiles > 10:
		score += 15
		factors = append(factors, "Moderate file count")
	}

	changes := s.TotalAdditions + s.TotalDeletions
	switch {
	case changes > 1000:
		score += 40
		factors = append(factors, "Large number of changes")
	case changes > 500:
		score += 20
		factors = append(factors, "Moderate number of changes")
	}

	if s.Languages > 3 {
		score += 15
		factors = append(factors, "Multiple languages")
	}
	if s.LargeFiles > 0 {
		score += 15
		factors = append(factors, "Large file changes")
	}
	if s.Commits > 10 {
		score += 10
		factors = append(factors, "Many commits")
	}

	score = clamp(score, 0, 100)
	return domain.Complexity{Score: score, Level: complexityLevel(score), Factors: factors}
}

func complexityLevel(score int) string {
	switch {
	case score > 70:
		return "High"
	case score > 30:
		return "Medium"
	default:
		return "Low"
	}
}

// Review states as reported by GitHub.
const (
	ReviewApproved         = "APPROVED"
	ReviewChangesRequested = "CHANGES_REQUESTED"
	ReviewCommented        = "COMMENTED"
)

// AssessReviewStatus derives the review status from the per-state review counts.
func AssessReviewStatus(states map[string]int, totalReviews int) domain.ReviewStatus {
	approved := states[ReviewApproved]
	changesRequested := states[ReviewChangesRequested]

	var status string
	switch {
	case approved > 0 && changesRequested == 0:
		status = "Ready to merge"
	case changesRequested > 0:
		status = "Changes requested"
	case totalReviews > 0:
		status = "Under review"
	default:
		status = "Awaiting review"
	}

	return domain.ReviewStatus{
		Status:                status,
		ApprovedCount:         approved,
		ChangesRequestedCount: changesRequested,
		CommentCount:          states[ReviewCommented],
		TotalReviews:          totalReviews,
	}
}

// RiskFactors lists every risk condition that holds for the pull request.
func RiskFactors(s PRSignals) []string {
	risks := []string{}
	if s.TotalFiles > 20 {
		risks = append(risks, "Large PR - consider breaking into smaller PRs")
	}
	if s.Languages > 3 {
		risks = append(risks, "Multiple languages modified - ensure consistent changes")
	}
	if s.LargeFiles > 0 {
		risks = append(risks, "Large files modified - review carefully for maintainability")
	}
	if strings.TrimSpace(s.Description) == "" {
		risks = append(risks, "No PR description - add context for reviewers")
	}
	if s.Commits > 15 {
		risks = append(risks, "Many commits - consider squashing")
	}
	if s.Mergeable != nil && !*s.Mergeable {
		risks = append(risks, "PR has merge conflicts - resolve before merging")
	}
	return risks
}

// Recommendations lists the actions that would make the pull request easier to merge.
func Recommendations(s PRSignals) []string {
	recs := []string{}
	if s.Reviews == 0 {
		recs = append(recs, "Request reviews from relevant team members")
	}
	if strings.TrimSpace(s.Description) == "" {
		recs = append(recs, "Add detailed PR description explaining changes")
	}
	if s.TotalFiles > 0 && !touchesTests(s.Filenames) {
		recs = append(recs, "Consider adding tests for new functionality")
	}
	if s.TotalFiles > 20 {
		recs = append(recs, "Consider breaking large PR into smaller, focused PRs")
	}
	if s.Commits > 10 {
		recs = append(recs, "Consider squashing commits for cleaner history")
	}
	return recs
}

func touchesTests(filenames []string) bool {
	for _, name := range filenames {
		if strings.Contains(strings.ToLower(name), "test") {
			return true
		}
	}
	return false
}
