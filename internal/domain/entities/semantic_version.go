package entities

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// SemanticVersion is a parsed "major.minor.patch[-prerelease][+build]" value.
// HasPrerelease and HasBuildMetadata record whether the separator was present,
// so "2.0.0-" carries an empty prerelease rather than none.
type SemanticVersion struct {
	Major            int
	Minor            int
	Patch            int
	Prerelease       string
	HasPrerelease    bool
	BuildMetadata    string
	HasBuildMetadata bool
}

// ParseSemanticVersion parses tag-like text such as "v1.2.3-beta.1+exp".
// It returns nil when the text has no numeric major component.
//
// Missing minor/patch components default to 0. A minor or patch component that
// is present but not numeric also becomes 0 instead of failing the parse.
func ParseSemanticVersion(text string) *SemanticVersion {
	remainder := text
	if strings.HasPrefix(strings.ToLower(remainder), "v") {
		remainder = remainder[1:]
	}

	var build string
	before, after, hasBuild := strings.Cut(remainder, "+")
	if hasBuild {
		remainder, build = before, after
	}

	var prerelease string
	before, after, hasPrerelease := strings.Cut(remainder, "-")
	if hasPrerelease {
		remainder, prerelease = before, after
	}

	components := strings.FieldsFunc(remainder, func(r rune) bool { return r == '.' })
	if len(components) == 0 {
		return nil
	}

	major, err := strconv.Atoi(components[0])
	if err != nil || major < 0 {
		return nil
	}

	return &SemanticVersion{
		Major:            major,
		Minor:            lenientComponent(components, 1),
		Patch:            lenientComponent(components, 2), //nolint:mnd // patch index
		Prerelease:       prerelease,
		HasPrerelease:    hasPrerelease,
		BuildMetadata:    build,
		HasBuildMetadata: hasBuild,
	}
}

func lenientComponent(components []string, index int) int {
	if index >= len(components) {
		return 0
	}
	value, err := strconv.Atoi(components[index])
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// MustParseSemanticVersion is ParseSemanticVersion for literals known to be valid.
func MustParseSemanticVersion(text string) SemanticVersion {
	version := ParseSemanticVersion(text)
	if version == nil {
		panic(fmt.Sprintf("invalid semantic version literal %q", text))
	}
	return *version
}

func (v SemanticVersion) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.HasPrerelease {
		sb.WriteString("-" + v.Prerelease)
	}
	if v.HasBuildMetadata {
		sb.WriteString("+" + v.BuildMetadata)
	}
	return sb.String()
}

// IsPrerelease reports whether the version carries a prerelease tag, even an
// empty one.
func (v SemanticVersion) IsPrerelease() bool {
	return v.HasPrerelease
}

// Compare orders two versions and returns -1, 0 or +1. Build metadata is
// ignored. A release orders above any prerelease of the same core, and two
// prereleases compare as plain strings.
func (v SemanticVersion) Compare(other SemanticVersion) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Patch, other.Patch); c != 0 {
		return c
	}

	switch {
	case !v.HasPrerelease && !other.HasPrerelease:
		return 0
	case !v.HasPrerelease:
		return 1
	case !other.HasPrerelease:
		return -1
	default:
		return strings.Compare(v.Prerelease, other.Prerelease)
	}
}

// LessThan reports whether v orders strictly before other.
func (v SemanticVersion) LessThan(other SemanticVersion) bool {
	return v.Compare(other) < 0
}

// GreaterThan reports whether v orders strictly after other.
func (v SemanticVersion) GreaterThan(other SemanticVersion) bool {
	return v.Compare(other) > 0
}

// canonical returns the core in the "vMAJOR.MINOR.PATCH" form x/mod/semver expects.
func (v SemanticVersion) canonical() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}
