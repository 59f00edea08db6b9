package depfile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

var (
	npmSecurityPackages = []string{
		"helmet", "cors", "express-rate-limit", "csurf", "bcrypt", "bcryptjs",
		"jsonwebtoken", "dompurify", "express-validator", "snyk",
	}
	npmTestFrameworks = []string{
		"jest", "mocha", "jasmine", "vitest", "cypress", "@playwright/test",
		"playwright", "ava", "tap", "karma", "chai",
	}
	pySecurityPackages = []string{"bandit", "safety", "cryptography", "pyjwt", "bcrypt", "passlib"}
	pyTestPackages     = []string{"pytest", "nose", "tox", "coverage", "hypothesis", "mock"}
)

// PackageJSONAnalysis summarises an npm package manifest.
type PackageJSONAnalysis struct {
	Name             string   `json:"name,omitempty"`
	Version          string   `json:"version,omitempty"`
	Dependencies     int      `json:"dependencies_count"`
	DevDependencies  int      `json:"dev_dependencies_count"`
	Scripts          []string `json:"scripts"`
	SecurityPackages []string `json:"security_packages"`
	TestFrameworks   []string `json:"test_frameworks"`
}

// AnalyzePackageJSON counts runtime and development dependencies and reports the
// known security and test packages among them.
func AnalyzePackageJSON(content string) (*PackageJSONAnalysis, error) {
	var manifest struct {
		Name            string            `json:"name"`
		Version         string            `json:"version"`
		Scripts         map[string]string `json:"scripts"`
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}

	present := func(pkg string) bool {
		_, inDeps := manifest.Dependencies[pkg]
		_, inDev := manifest.DevDependencies[pkg]
		return inDeps || inDev
	}
	out := &PackageJSONAnalysis{
		Name:             manifest.Name,
		Version:          manifest.Version,
		Dependencies:     len(manifest.Dependencies),
		DevDependencies:  len(manifest.DevDependencies),
		Scripts:          sortedKeys(manifest.Scripts),
		SecurityPackages: []string{},
		TestFrameworks:   []string{},
	}
	for _, pkg := range npmSecurityPackages {
		if present(pkg) {
			out.SecurityPackages = append(out.SecurityPackages, pkg)
		}
	}
	for _, pkg := range npmTestFrameworks {
		if present(pkg) {
			out.TestFrameworks = append(out.TestFrameworks, pkg)
		}
	}
	return out, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RequirementsAnalysis summarises a pip requirements file.
type RequirementsAnalysis struct {
	TotalRequirements int      `json:"total_requirements"`
	PinnedVersions    int      `json:"pinned_versions"`
	SecurityPackages  []string `json:"security_packages"`
	TestPackages      []string `json:"test_packages"`
}

// AnalyzeRequirements counts requirement lines and those pinned with "==".
// Comments, blank lines and pip options (lines starting with "-") are skipped.
func AnalyzeRequirements(content string) *RequirementsAnalysis {
	out := &RequirementsAnalysis{SecurityPackages: []string{}, TestPackages: []string{}}
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}
		out.TotalRequirements++
		if strings.Contains(line, "==") {
			out.PinnedVersions++
		}

		name := strings.ToLower(requirementName(line))
		if matchesAny(name, pySecurityPackages) {
			out.SecurityPackages = append(out.SecurityPackages, name)
		}
		if matchesAny(name, pyTestPackages) {
			out.TestPackages = append(out.TestPackages, name)
		}
	}
	return out
}

// requirementName strips version specifiers, extras and markers from a requirement line.
func requirementName(line string) string {
	if i := strings.IndexAny(line, "=<>!~[;@ "); i >= 0 {
		return line[:i]
	}
	return line
}

func matchesAny(name string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(name, n) {
			return true
		}
	}
	return false
}

var (
	pyprojectSections = []string{
		"build-system", "project", "project.optional-dependencies",
		"tool.poetry", "tool.poetry.dependencies", "tool.poetry.dev-dependencies",
		"tool.pytest.ini_options", "tool.black", "tool.ruff", "tool.mypy",
	}
	pipfileSections = []string{"source", "packages", "dev-packages", "requires"}
)

// SectionAnalysis records which well-known sections a TOML manifest declares.
type SectionAnalysis struct {
	Sections map[string]bool `json:"sections"`
}

// AnalyzeSections parses content as TOML and checks each dotted section path.
func AnalyzeSections(content string, sections []string) (*SectionAnalysis, error) {
	var doc map[string]any
	if err := toml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	out := &SectionAnalysis{Sections: make(map[string]bool, len(sections))}
	for _, s := range sections {
		out.Sections[s] = hasTable(doc, strings.Split(s, "."))
	}
	return out, nil
}

// hasTable follows path through nested tables. The last element may also be an
// array of tables, as in Pipfile's [[source]].
func hasTable(doc map[string]any, path []string) bool {
	cur := doc
	for i, key := range path {
		switch v := cur[key].(type) {
		case map[string]any:
			cur = v
		case []any:
			return i == len(path)-1
		default:
			return false
		}
	}
	return true
}
