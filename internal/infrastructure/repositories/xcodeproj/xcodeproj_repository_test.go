//go:build unit

package xcodeproj_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
	"github.com/rios0rios0/swiftoutdated/internal/infrastructure/repositories/xcodeproj"
)

const samplePbxproj = `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {
	};
	objectVersion = 60;
	objects = {

/* Begin PBXProject section */
		AA0000000000000000000001 /* Project object */ = {
			isa = PBXProject;
			buildConfigurationList = AA0000000000000000000009;
			compatibilityVersion = "Xcode 14.0";
			mainGroup = AA0000000000000000000008;
			packageReferences = (
				BB0000000000000000000002 /* XCRemoteSwiftPackageReference "Kingfisher" */,
				BB0000000000000000000001 /* XCRemoteSwiftPackageReference "swift-collections" */,
			);
			targets = (
			);
		};
/* End PBXProject section */

/* Begin XCRemoteSwiftPackageReference section */
		BB0000000000000000000001 /* XCRemoteSwiftPackageReference "swift-collections" */ = {
			isa = XCRemoteSwiftPackageReference;
			repositoryURL = "https://github.com/apple/swift-collections.git";
			requirement = {
				kind = upToNextMinorVersion;
				minimumVersion = 1.1.0;
			};
		};
		BB0000000000000000000002 /* XCRemoteSwiftPackageReference "Kingfisher" */ = {
			isa = XCRemoteSwiftPackageReference;
			repositoryURL = "https://github.com/onevcat/Kingfisher";
			requirement = {
				kind = upToNextMajorVersion;
				minimumVersion = 7.0.0;
			};
		};
		BB0000000000000000000003 /* XCRemoteSwiftPackageReference "swift-log" */ = {
			isa = XCRemoteSwiftPackageReference;
			repositoryURL = "https://github.com/apple/swift-log.git";
			requirement = {
				branch = main;
				kind = branch;
			};
		};
/* End XCRemoteSwiftPackageReference section */

/* Begin XCLocalSwiftPackageReference section */
		CC0000000000000000000001 /* XCLocalSwiftPackageReference "LocalKit" */ = {
			isa = XCLocalSwiftPackageReference;
			relativePath = LocalKit;
		};
/* End XCLocalSwiftPackageReference section */
	};
	rootObject = AA0000000000000000000001 /* Project object */;
}
`

func TestParseProject(t *testing.T) {
	t.Parallel()

	t.Run("should read remote package references in project order", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte(samplePbxproj)

		// when
		deps, err := xcodeproj.ParseProject(data)

		// then
		require.NoError(t, err)
		require.Len(t, deps, 3)
		assert.Equal(t, "https://github.com/onevcat/Kingfisher", deps[0].URL)
		assert.Equal(t, entities.UpToNextMajor(entities.MustParseSemanticVersion("7.0.0")), deps[0].Requirement)
		assert.Equal(t, "https://github.com/apple/swift-collections.git", deps[1].URL)
		assert.Equal(t, entities.UpToNextMinor(entities.MustParseSemanticVersion("1.1.0")), deps[1].Requirement)
		assert.Equal(t, "https://github.com/apple/swift-log.git", deps[2].URL)
		assert.Equal(t, entities.Branch("main"), deps[2].Requirement)
	})

	t.Run("should fail on content that is not a property list", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte("{ objects = ")

		// when
		_, err := xcodeproj.ParseProject(data)

		// then
		require.Error(t, err)
	})
}

func TestMapRequirement(t *testing.T) {
	t.Parallel()

	t.Run("should map every Xcode requirement kind", func(t *testing.T) {
		t.Parallel()

		// given
		v := entities.MustParseSemanticVersion
		tests := []struct {
			input    map[string]string
			expected entities.VersionRequirement
		}{
			{map[string]string{"kind": "upToNextMajorVersion", "minimumVersion": "2.0.0"}, entities.UpToNextMajor(v("2.0.0"))},
			{map[string]string{"kind": "upToNextMinorVersion", "minimumVersion": "1.2.0"}, entities.UpToNextMinor(v("1.2.0"))},
			{map[string]string{"kind": "exactVersion", "version": "1.2.3"}, entities.Exact(v("1.2.3"))},
			{
				map[string]string{"kind": "versionRange", "minimumVersion": "1.0.0", "maximumVersion": "3.0.0"},
				entities.Range(v("1.0.0"), v("3.0.0")),
			},
			{map[string]string{"kind": "branch", "branch": "develop"}, entities.Branch("develop")},
			{map[string]string{"kind": "revision", "revision": "abcdef1234"}, entities.Revision("abcdef1234")},
			{map[string]string{"kind": "exactVersion", "version": "latest"}, entities.UnknownRequirement()},
			{map[string]string{"kind": "versionRange", "minimumVersion": "1.0.0"}, entities.UnknownRequirement()},
			{map[string]string{"kind": "somethingNew"}, entities.UnknownRequirement()},
			{nil, entities.UnknownRequirement()},
		}

		for _, tt := range tests {
			// when
			result := xcodeproj.MapRequirement(tt.input)

			// then
			assert.Equal(t, tt.expected, result, "%v", tt.input)
		}
	})
}

func TestXcodeprojRepository(t *testing.T) {
	t.Parallel()

	t.Run("should locate the project that contains the lock file", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		project := filepath.Join(root, "App.xcodeproj")
		spm := filepath.Join(project, "project.xcworkspace", "xcshareddata", "swiftpm")
		require.NoError(t, os.MkdirAll(spm, 0o755))
		repository := xcodeproj.NewXcodeprojRepository()

		// when
		paths := repository.Locate(filepath.Join(spm, "Package.resolved"))

		// then
		assert.Equal(t, []string{project}, paths)
	})

	t.Run("should locate a sibling project of a workspace lock file", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		spm := filepath.Join(root, "App.xcworkspace", "xcshareddata", "swiftpm")
		require.NoError(t, os.MkdirAll(spm, 0o755))
		project := filepath.Join(root, "App.xcodeproj")
		require.NoError(t, os.MkdirAll(project, 0o755))
		repository := xcodeproj.NewXcodeprojRepository()

		// when
		paths := repository.Locate(filepath.Join(spm, "Package.resolved"))

		// then
		assert.Equal(t, []string{project}, paths)
	})

	t.Run("should parse project.pbxproj inside the bundle", func(t *testing.T) {
		t.Parallel()

		// given
		project := filepath.Join(t.TempDir(), "App.xcodeproj")
		require.NoError(t, os.MkdirAll(project, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(project, "project.pbxproj"), []byte(samplePbxproj), 0o600))
		repository := xcodeproj.NewXcodeprojRepository()

		// when
		manifest, err := repository.Parse(project)

		// then
		require.NoError(t, err)
		assert.Equal(t, project, manifest.Path)
		assert.Len(t, manifest.Dependencies, 3)
		assert.Equal(t, "xcodeproj", repository.Name())
	})

	t.Run("should fail when the bundle has no project.pbxproj", func(t *testing.T) {
		t.Parallel()

		// given
		project := filepath.Join(t.TempDir(), "Empty.xcodeproj")
		require.NoError(t, os.MkdirAll(project, 0o755))
		repository := xcodeproj.NewXcodeprojRepository()

		// when
		_, err := repository.Parse(project)

		// then
		require.Error(t, err)
	})
}
