package xcodeproj

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	logger "github.com/sirupsen/logrus"
	"howett.net/plist"

	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
	"github.com/rios0rios0/swiftoutdated/internal/domain/repositories"
)

const (
	manifestName  = "xcodeproj"
	projectExt    = ".xcodeproj"
	pbxprojFile   = "project.pbxproj"
	remotePackage = "XCRemoteSwiftPackageReference"
	maxWalkUp     = 10
)

// pbxproj is the subset of project.pbxproj this reader needs.
type pbxproj struct {
	Objects    map[string]pbxObject `plist:"objects"`
	RootObject string               `plist:"rootObject"`
}

// pbxObject holds the fields of PBXProject and XCRemoteSwiftPackageReference
// entries. Every other object type decodes with these fields empty.
type pbxObject struct {
	ISA               string            `plist:"isa"`
	PackageReferences []string          `plist:"packageReferences"`
	RepositoryURL     string            `plist:"repositoryURL"`
	Requirement       map[string]string `plist:"requirement"`
}

// XcodeprojRepository reads remote Swift package references from an Xcode
// project.
type XcodeprojRepository struct{}

// NewXcodeprojRepository creates a new Xcode project reader.
func NewXcodeprojRepository() repositories.ManifestRepository {
	return &XcodeprojRepository{}
}

func (r *XcodeprojRepository) Name() string { return manifestName }

// Locate returns the nearest .xcodeproj at or above the lock file directory.
func (r *XcodeprojRepository) Locate(resolvedPath string) []string {
	current := filepath.Dir(filepath.Clean(resolvedPath))
	for range maxWalkUp {
		if filepath.Ext(current) == projectExt && isDir(current) {
			return []string{current}
		}
		if found := firstProjectIn(current); found != "" {
			return []string{found}
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return []string{}
}

// Parse decodes <path>/project.pbxproj. The manifest path is the .xcodeproj
// directory itself.
func (r *XcodeprojRepository) Parse(path string) (entities.PackageManifest, error) {
	data, err := os.ReadFile(filepath.Join(path, pbxprojFile))
	if err != nil {
		return entities.PackageManifest{}, fmt.Errorf("failed to read %s: %w", pbxprojFile, err)
	}

	dependencies, err := ParseProject(data)
	if err != nil {
		return entities.PackageManifest{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return entities.PackageManifest{Path: path, Dependencies: dependencies}, nil
}

// ParseProject extracts remote package references from project.pbxproj
// content. References listed by the root project come first, in project
// order; any other remote reference follows, ordered by object ID.
func ParseProject(data []byte) ([]entities.ManifestDependency, error) {
	var project pbxproj
	if _, err := plist.Unmarshal(data, &project); err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	seen := make(map[string]bool)
	if root, ok := project.Objects[project.RootObject]; ok {
		for _, id := range root.PackageReferences {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	rest := make([]string, 0)
	for id, object := range project.Objects {
		if object.ISA == remotePackage && !seen[id] {
			rest = append(rest, id)
		}
	}
	slices.Sort(rest)
	ids = append(ids, rest...)

	dependencies := make([]entities.ManifestDependency, 0, len(ids))
	for _, id := range ids {
		object, ok := project.Objects[id]
		if !ok || object.ISA != remotePackage || object.RepositoryURL == "" {
			continue
		}
		dependencies = append(dependencies, entities.ManifestDependency{
			URL:         object.RepositoryURL,
			Requirement: MapRequirement(object.Requirement),
		})
	}
	logger.Debugf("[%s] Found %d remote package references", manifestName, len(dependencies))
	return dependencies, nil
}

// MapRequirement converts an XCRemoteSwiftPackageReference requirement
// dictionary. Unknown kinds and unparsable versions map to unknown.
func MapRequirement(requirement map[string]string) entities.VersionRequirement {
	version := func(key string) *entities.SemanticVersion {
		return entities.ParseSemanticVersion(requirement[key])
	}

	switch requirement["kind"] {
	case "upToNextMajorVersion":
		if from := version("minimumVersion"); from != nil {
			return entities.UpToNextMajor(*from)
		}
	case "upToNextMinorVersion":
		if from := version("minimumVersion"); from != nil {
			return entities.UpToNextMinor(*from)
		}
	case "exactVersion":
		if exact := version("version"); exact != nil {
			return entities.Exact(*exact)
		}
	case "versionRange":
		from, to := version("minimumVersion"), version("maximumVersion")
		if from != nil && to != nil {
			return entities.Range(*from, *to)
		}
	case "branch":
		return entities.Branch(requirement["branch"])
	case "revision":
		return entities.Revision(requirement["revision"])
	}
	return entities.UnknownRequirement()
}

func firstProjectIn(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() && filepath.Ext(entry.Name()) == projectExt {
			return filepath.Join(dir, entry.Name())
		}
	}
	return ""
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
