package packageswift

import (
	"regexp"

	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
)

// declarationPattern matches one `.package(...)` call. Nested parentheses are
// not balanced: the match stops at the first closing paren after the opening
// one, which is enough for every shape recognised below.
var declarationPattern = regexp.MustCompile(`\.package\s*\([^)]+\)`)

var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`url:\s*"([^"]+)"`),
	regexp.MustCompile(`"(https?://[^"]+)"`),
	regexp.MustCompile(`"(git@[^"]+)"`),
}

var (
	branchPatterns = []*regexp.Regexp{
		regexp.MustCompile(`branch:\s*"([^"]+)"`),
		regexp.MustCompile(`\.branch\s*\(\s*"([^"]+)"\s*\)`),
	}
	revisionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`revision:\s*"([^"]+)"`),
		regexp.MustCompile(`\.revision\s*\(\s*"([^"]+)"\s*\)`),
	}
	exactPatterns = []*regexp.Regexp{
		regexp.MustCompile(`exact:\s*"([^"]+)"`),
		regexp.MustCompile(`\.exact\s*\(\s*"([^"]+)"\s*\)`),
	}
	// "1.0.0"..<"2.0.0" and the closed "1.0.0"..."2.0.0" are both read as half-open.
	rangePattern         = regexp.MustCompile(`"([^"]+)"\s*\.\.[.<]\s*"([^"]+)"`)
	upToNextMinorPattern = regexp.MustCompile(`\.upToNextMinor\s*\(\s*from:\s*"([^"]+)"\s*\)`)
	upToNextMajorPattern = []*regexp.Regexp{
		regexp.MustCompile(`\.upToNextMajor\s*\(\s*from:\s*"([^"]+)"\s*\)`),
		regexp.MustCompile(`from:\s*"([^"]+)"`),
	}
)

// requirementExtractor recognises one requirement shape inside a declaration.
type requirementExtractor func(declaration string) (entities.VersionRequirement, bool)

// requirementExtractors run in priority order; the first match wins.
var requirementExtractors = []requirementExtractor{
	extractBranch,
	extractRevision,
	extractExact,
	extractRange,
	extractUpToNextMinor,
	extractUpToNextMajor,
}

// ParseContent recovers the dependency declarations of a Package.swift, in
// order of appearance. Declarations without a recognisable URL are dropped.
func ParseContent(content string) []entities.ManifestDependency {
	dependencies := make([]entities.ManifestDependency, 0)
	for _, declaration := range declarationPattern.FindAllString(content, -1) {
		url, ok := firstSubmatch(declaration, urlPatterns...)
		if !ok {
			continue
		}
		dependencies = append(dependencies, entities.ManifestDependency{
			URL:         url,
			Requirement: extractRequirement(declaration),
		})
	}
	return dependencies
}

func extractRequirement(declaration string) entities.VersionRequirement {
	for _, extract := range requirementExtractors {
		if requirement, ok := extract(declaration); ok {
			return requirement
		}
	}
	return entities.UnknownRequirement()
}

func extractBranch(declaration string) (entities.VersionRequirement, bool) {
	name, ok := firstSubmatch(declaration, branchPatterns...)
	if !ok {
		return entities.VersionRequirement{}, false
	}
	return entities.Branch(name), true
}

func extractRevision(declaration string) (entities.VersionRequirement, bool) {
	id, ok := firstSubmatch(declaration, revisionPatterns...)
	if !ok {
		return entities.VersionRequirement{}, false
	}
	return entities.Revision(id), true
}

func extractExact(declaration string) (entities.VersionRequirement, bool) {
	version := parseFirstSubmatch(declaration, exactPatterns...)
	if version == nil {
		return entities.VersionRequirement{}, false
	}
	return entities.Exact(*version), true
}

func extractRange(declaration string) (entities.VersionRequirement, bool) {
	match := rangePattern.FindStringSubmatch(declaration)
	if match == nil {
		return entities.VersionRequirement{}, false
	}
	lower := entities.ParseSemanticVersion(match[1])
	upper := entities.ParseSemanticVersion(match[2])
	if lower == nil || upper == nil {
		return entities.VersionRequirement{}, false
	}
	return entities.Range(*lower, *upper), true
}

func extractUpToNextMinor(declaration string) (entities.VersionRequirement, bool) {
	version := parseFirstSubmatch(declaration, upToNextMinorPattern)
	if version == nil {
		return entities.VersionRequirement{}, false
	}
	return entities.UpToNextMinor(*version), true
}

func extractUpToNextMajor(declaration string) (entities.VersionRequirement, bool) {
	version := parseFirstSubmatch(declaration, upToNextMajorPattern...)
	if version == nil {
		return entities.VersionRequirement{}, false
	}
	return entities.UpToNextMajor(*version), true
}

// firstSubmatch returns the first capture group of the first pattern that
// matches.
func firstSubmatch(text string, patterns ...*regexp.Regexp) (string, bool) {
	for _, pattern := range patterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			return match[1], true
		}
	}
	return "", false
}

// parseFirstSubmatch parses the capture of the first matching pattern only;
// later patterns are not tried when that capture is not a version.
func parseFirstSubmatch(text string, patterns ...*regexp.Regexp) *entities.SemanticVersion {
	raw, ok := firstSubmatch(text, patterns...)
	if !ok {
		return nil
	}
	return entities.ParseSemanticVersion(raw)
}
