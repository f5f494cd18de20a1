package entities

import "fmt"

// RequirementKind tags which variant a VersionRequirement holds.
type RequirementKind int

const (
	RequirementUnknown RequirementKind = iota
	RequirementUpToNextMajor
	RequirementUpToNextMinor
	RequirementExact
	RequirementRange
	RequirementBranch
	RequirementRevision
)

const shortRevisionLength = 7

// VersionRequirement is a constraint declared for a dependency in a manifest.
// Only the fields relevant to Kind are set:
//   - UpToNextMajor, UpToNextMinor: From
//   - Exact: From holds the exact version
//   - Range: From (inclusive) and To (exclusive)
//   - Branch, Revision: Ref
type VersionRequirement struct {
	Kind RequirementKind
	From SemanticVersion
	To   SemanticVersion
	Ref  string
}

func UpToNextMajor(from SemanticVersion) VersionRequirement {
	return VersionRequirement{Kind: RequirementUpToNextMajor, From: from}
}

func UpToNextMinor(from SemanticVersion) VersionRequirement {
	return VersionRequirement{Kind: RequirementUpToNextMinor, From: from}
}

func Exact(version SemanticVersion) VersionRequirement {
	return VersionRequirement{Kind: RequirementExact, From: version}
}

func Range(from, to SemanticVersion) VersionRequirement {
	return VersionRequirement{Kind: RequirementRange, From: from, To: to}
}

func Branch(name string) VersionRequirement {
	return VersionRequirement{Kind: RequirementBranch, Ref: name}
}

func Revision(id string) VersionRequirement {
	return VersionRequirement{Kind: RequirementRevision, Ref: id}
}

func UnknownRequirement() VersionRequirement {
	return VersionRequirement{Kind: RequirementUnknown}
}

// IsSatisfiedBy reports whether version is acceptable under the requirement.
// Branch, revision and unknown requirements carry no numeric bound and accept
// every version.
func (r VersionRequirement) IsSatisfiedBy(version SemanticVersion) bool {
	switch r.Kind {
	case RequirementUpToNextMajor:
		return version.Major == r.From.Major && version.Compare(r.From) >= 0
	case RequirementUpToNextMinor:
		return version.Major == r.From.Major &&
			version.Minor == r.From.Minor &&
			version.Compare(r.From) >= 0
	case RequirementExact:
		return version.Major == r.From.Major &&
			version.Minor == r.From.Minor &&
			version.Patch == r.From.Patch
	case RequirementRange:
		return version.Compare(r.From) >= 0 && version.LessThan(r.To)
	case RequirementBranch, RequirementRevision, RequirementUnknown:
		return true
	default:
		return true
	}
}

func (r VersionRequirement) String() string {
	switch r.Kind {
	case RequirementUpToNextMajor:
		return fmt.Sprintf("from: %s (up to next major)", r.From)
	case RequirementUpToNextMinor:
		return fmt.Sprintf("from: %s (up to next minor)", r.From)
	case RequirementExact:
		return fmt.Sprintf("exact: %s", r.From)
	case RequirementRange:
		return fmt.Sprintf("%s..<%s", r.From, r.To)
	case RequirementBranch:
		return "branch: " + r.Ref
	case RequirementRevision:
		revision := r.Ref
		if len(revision) > shortRevisionLength {
			revision = revision[:shortRevisionLength]
		}
		return "revision: " + revision
	default:
		return "unknown"
	}
}
