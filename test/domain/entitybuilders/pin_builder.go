//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
)

// PinBuilder helps create Package.resolved pins with a fluent interface.
type PinBuilder struct {
	*testkit.BaseBuilder
	identity string
	location string
	revision string
	version  *string
	branch   *string
}

// NewPinBuilder creates a new pin builder pinned to version 1.0.0.
func NewPinBuilder() *PinBuilder {
	version := "1.0.0"
	return &PinBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		identity:    "swift-test-package",
		location:    "https://github.com/test/swift-test-package.git",
		revision:    "0123456789abcdef0123456789abcdef01234567",
		version:     &version,
	}
}

// WithIdentity sets the pin identity.
func (b *PinBuilder) WithIdentity(identity string) *PinBuilder {
	b.identity = identity
	return b
}

// WithLocation sets the repository location.
func (b *PinBuilder) WithLocation(location string) *PinBuilder {
	b.location = location
	return b
}

// WithVersion pins a version and clears any branch.
func (b *PinBuilder) WithVersion(version string) *PinBuilder {
	b.version = &version
	b.branch = nil
	return b
}

// WithBranch pins a branch and clears any version.
func (b *PinBuilder) WithBranch(branch string) *PinBuilder {
	b.branch = &branch
	b.version = nil
	return b
}

// Build creates the pin (satisfies testkit.Builder interface).
func (b *PinBuilder) Build() interface{} {
	return b.BuildPin()
}

// BuildPin creates the pin with a concrete return type.
func (b *PinBuilder) BuildPin() entities.Pin {
	return entities.Pin{
		Identity: b.identity,
		Kind:     "remoteSourceControl",
		Location: b.location,
		State: entities.PinState{
			Revision: b.revision,
			Version:  b.version,
			Branch:   b.branch,
		},
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PinBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	version := "1.0.0"
	b.identity = "swift-test-package"
	b.location = "https://github.com/test/swift-test-package.git"
	b.revision = "0123456789abcdef0123456789abcdef01234567"
	b.version = &version
	b.branch = nil
	return b
}

// Clone creates a deep copy of the PinBuilder.
func (b *PinBuilder) Clone() testkit.Builder {
	clone := &PinBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		identity:    b.identity,
		location:    b.location,
		revision:    b.revision,
	}
	if b.version != nil {
		version := *b.version
		clone.version = &version
	}
	if b.branch != nil {
		branch := *b.branch
		clone.branch = &branch
	}
	return clone
}
