package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/naka-gawa/github-insights/internal/domain"
)

// Point weights of the health checks.
const (
	readmePoints        = 15
	licensePoints       = 10
	freshPoints         = 10
	recentPoints        = 5
	securityPoints      = 5
	communityFilePoints = 3
	ciPoints            = 8
	bareGitHubPoints    = 2
	manifestPoints      = 5
	lockPoints          = 2
	issuesPoints        = 3
	wikiPoints          = 2
	projectsPoints      = 2
	topicsPoints        = 5
)

// HealthMaxPoints is the raw score of a repository with one file of every kind.
const HealthMaxPoints = healthBudget + freshPoints

// healthBudget is what the percentage is expressed against. Each category counts at most
// its single-file weight there, and recent updates are a bonus on top.
const healthBudget = readmePoints + licensePoints + securityPoints +
	2*communityFilePoints + ciPoints + manifestPoints + lockPoints +
	issuesPoints + wikiPoints + projectsPoints + topicsPoints

var (
	securityFiles     = []string{"security.md", "security.txt", "security.rst", "security"}
	contributingFiles = []string{"contributing.md", "contributing.rst", "contributing.txt", "contributing"}
	conductFiles      = []string{"code_of_conduct.md", "code_of_conduct.rst", "code_of_conduct.txt", "code-of-conduct.md"}
	ciFiles           = []string{
		".travis.yml", ".gitlab-ci.yml", "jenkinsfile", "azure-pipelines.yml", ".circleci",
		"appveyor.yml", ".appveyor.yml", "bitbucket-pipelines.yml", "cloudbuild.yaml", ".drone.yml",
	}
	licensePrefixes = []string{"license", "licence", "copying"}
)

// Manifest pairs a dependency manifest with the lock files that pin it.
type Manifest struct {
	Name  string
	Locks []string
}

// Manifests is the ordered list of manifests recognised by the health check.
var Manifests = []Manifest{
	{Name: "package.json", Locks: []string{"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "npm-shrinkwrap.json"}},
	{Name: "requirements.txt"},
	{Name: "Pipfile", Locks: []string{"Pipfile.lock"}},
	{Name: "pyproject.toml", Locks: []string{"poetry.lock", "uv.lock", "pdm.lock"}},
	{Name: "Gemfile", Locks: []string{"Gemfile.lock"}},
	{Name: "go.mod", Locks: []string{"go.sum"}},
	{Name: "Cargo.toml", Locks: []string{"Cargo.lock"}},
	{Name: "composer.json", Locks: []string{"composer.lock"}},
}

// HealthInput is everything the health check looks at.
type HealthInput struct {
	Repository domain.Repository
	Contents   []domain.ContentEntry
	Community  *domain.CommunityProfile // nil when GitHub has no profile for the repository
	Now        time.Time
}

// HealthStatus labels a health percentage.
func HealthStatus(percentage int) string {
	switch {
	case percentage >= 90:
		return "Excellent"
	case percentage >= 70:
		return "Good"
	case percentage >= 50:
		return "Needs Improvement"
	default:
		return "Poor"
	}
}

// EvaluateHealth scores a repository against the good-practice checklist.
// Owner and Repo of the returned report are left for the caller to fill in.
func EvaluateHealth(in HealthInput) domain.HealthReport {
	names := make(map[string]bool, len(in.Contents))
	for _, entry := range in.Contents {
		names[strings.ToLower(entry.Name)] = true
	}
	community := in.Community
	if community == nil {
		community = &domain.CommunityProfile{}
	}

	// score adds every matching file; rated caps each category for the percentage.
	score, rated := 0, 0
	checks := domain.HealthChecks{CIFiles: []string{}, Manifests: []string{}}
	issues := []string{}

	checks.HasReadme = community.HasReadme || hasPrefix(names, "readme")
	if checks.HasReadme {
		score += readmePoints
		rated += readmePoints
	} else {
		issues = append(issues, "Missing README file")
	}

	checks.HasLicense = in.Repository.LicenseKey != "" || community.HasLicense || hasPrefix(names, licensePrefixes...)
	if checks.HasLicense {
		score += licensePoints
		rated += licensePoints
	} else {
		issues = append(issues, "No license detected")
	}

	if !in.Repository.UpdatedAt.IsZero() {
		days := int(math.Floor(in.Now.Sub(in.Repository.UpdatedAt).Hours() / 24))
		if days < 0 {
			days = 0
		}
		checks.DaysSinceUpdate = &days
		switch {
		case days <= 30:
			score += freshPoints
			rated += freshPoints
		case days <= 90:
			score += recentPoints
			rated += recentPoints
		default:
			issues = append(issues, fmt.Sprintf("No updates in %d days", days))
		}
	}

	if n := countNames(names, securityFiles); n > 0 {
		checks.HasSecurityPolicy = true
		score += n * securityPoints
		rated += securityPoints
	} else {
		issues = append(issues, "No security policy (SECURITY.md)")
	}

	if n := countNames(names, contributingFiles); n > 0 {
		checks.HasContributing = true
		score += n * communityFilePoints
		rated += communityFilePoints
	} else if community.HasContributing {
		checks.HasContributing = true
		score += communityFilePoints
		rated += communityFilePoints
	} else {
		issues = append(issues, "Missing contributing guidelines")
	}

	if n := countNames(names, conductFiles); n > 0 {
		checks.HasCodeOfConduct = true
		score += n * communityFilePoints
		rated += communityFilePoints
	} else if community.HasCodeOfConduct {
		checks.HasCodeOfConduct = true
		score += communityFilePoints
		rated += communityFilePoints
	} else {
		issues = append(issues, "Missing code of conduct")
	}

	for _, entry := range in.Contents {
		for _, ci := range ciFiles {
			if strings.EqualFold(entry.Name, ci) {
				checks.CIFiles = append(checks.CIFiles, entry.Name)
				score += ciPoints
			}
		}
	}
	switch {
	case len(checks.CIFiles) > 0:
		checks.HasCI = true
		rated += ciPoints
	case names[".github"]:
		checks.HasCI = true
		checks.CIFiles = append(checks.CIFiles, ".github")
		score += bareGitHubPoints
		rated += bareGitHubPoints
	default:
		issues = append(issues, "No CI/CD configuration detected")
	}

	locked := false
	for _, m := range Manifests {
		if !names[strings.ToLower(m.Name)] {
			continue
		}
		checks.Manifests = append(checks.Manifests, m.Name)
		score += manifestPoints
		if len(m.Locks) == 0 {
			continue
		}
		if countNames(names, m.Locks) > 0 {
			score += lockPoints
			locked = true
		} else {
			issues = append(issues, fmt.Sprintf("%s found without a lock file (%s)", m.Name, strings.Join(m.Locks, ", ")))
		}
	}

	if len(checks.Manifests) > 0 {
		rated += manifestPoints
	}
	if locked {
		rated += lockPoints
	}

	repo := in.Repository
	if repo.HasIssues {
		score += issuesPoints
		rated += issuesPoints
	}
	if repo.HasWiki {
		score += wikiPoints
		rated += wikiPoints
	}
	if repo.HasProjects {
		score += projectsPoints
		rated += projectsPoints
	}
	if len(repo.Topics) > 0 {
		score += topicsPoints
		rated += topicsPoints
	} else {
		issues = append(issues, "Repository has no topics")
	}
	if repo.Archived {
		issues = append(issues, "Repository is archived")
	}
	if repo.Fork {
		issues = append(issues, "Repository is a fork")
	}

	percentage := clamp(int(math.Round(float64(rated)*100/float64(healthBudget))), 0, 100)

	recs := []string{}
	if !checks.HasReadme {
		recs = append(recs, "Add a README describing the project and how to use it")
	}
	if !checks.HasLicense {
		recs = append(recs, "Add a LICENSE file so others know how they may use the code")
	}
	if !checks.HasSecurityPolicy {
		recs = append(recs, "Add a SECURITY.md describing how to report vulnerabilities")
	}
	if !checks.HasCI {
		recs = append(recs, "Set up CI/CD (for example GitHub Actions) to run tests on every change")
	}
	if percentage < 90 {
		recs = append(recs, "Address the issues listed above to improve repository health")
	}

	report := domain.HealthReport{
		Score:           score,
		MaxScore:        HealthMaxPoints,
		Percentage:      percentage,
		Status:          HealthStatus(percentage),
		Checks:          checks,
		Issues:          issues,
		Recommendations: recs,
	}
	if in.Community != nil {
		p := in.Community.HealthPercentage
		report.CommunityHealthPercentage = &p
	}
	return report
}

func hasPrefix(names map[string]bool, prefixes ...string) bool {
	for name := range names {
		for _, p := range prefixes {
			if strings.HasPrefix(name, p) {
				return true
			}
		}
	}
	return false
}

func countNames(names map[string]bool, candidates []string) int {
	n := 0
	for _, c := range candidates {
		if names[strings.ToLower(c)] {
			n++
		}
	}
	return n
}
