// Package depfile recognises dependency manifests by file name and analyses their content.
package depfile

import (
	"strings"
)

// Format identifies how a manifest is analysed.
type Format string

const (
	FormatPackageJSON  Format = "package.json"
	FormatRequirements Format = "requirements.txt"
	FormatPyproject    Format = "pyproject.toml"
	FormatPipfile      Format = "Pipfile"
	FormatOther        Format = "other"
)

// knownFiles are matched case-insensitively against top-level file names.
var knownFiles = []string{
	"package.json", "package-lock.json", "yarn.lock", "pnpm-lock.yaml",
	"requirements.txt", "Pipfile", "Pipfile.lock", "pyproject.toml", "poetry.lock",
	"Gemfile", "Gemfile.lock",
	"pom.xml", "build.gradle", "build.gradle.kts",
	"go.mod", "go.sum",
	"Cargo.toml", "Cargo.lock",
	"composer.json", "composer.lock",
	"packages.config",
	".nvmrc", ".node-version", ".ruby-version", "runtime.txt",
}

// knownSuffixes match any file name ending with them.
var knownSuffixes = []string{".csproj"}

// IsManifest reports whether name is a recognised dependency file.
func IsManifest(name string) bool {
	for _, k := range knownFiles {
		if strings.EqualFold(name, k) {
			return true
		}
	}
	lower := strings.ToLower(name)
	for _, s := range knownSuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// Detect returns the analysis format of a manifest file name.
func Detect(name string) Format {
	switch strings.ToLower(name) {
	case "package.json":
		return FormatPackageJSON
	case "requirements.txt":
		return FormatRequirements
	case "pyproject.toml":
		return FormatPyproject
	case "pipfile":
		return FormatPipfile
	default:
		return FormatOther
	}
}

// Placeholder is returned for manifests without a dedicated analyzer.
type Placeholder struct {
	Message string `json:"message"`
}

// Analyze runs the analyzer matching name over content. A returned error is
// a parse failure local to this one file.
func Analyze(name, content string) (Format, any, error) {
	format := Detect(name)
	var (
		analysis any
		err      error
	)
	switch format {
	case FormatPackageJSON:
		analysis, err = AnalyzePackageJSON(content)
	case FormatRequirements:
		analysis = AnalyzeRequirements(content)
	case FormatPyproject:
		analysis, err = AnalyzeSections(content, pyprojectSections)
	case FormatPipfile:
		analysis, err = AnalyzeSections(content, pipfileSections)
	default:
		analysis = Placeholder{Message: "no analysis implemented for " + name}
	}
	if err != nil {
		return format, nil, err
	}
	return format, analysis, nil
}
