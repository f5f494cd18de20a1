package entities

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrResolvedFileNotFound is returned when no Package.resolved can be located.
	ErrResolvedFileNotFound = errors.New("Package.resolved not found")
	// ErrUnsupportedResolvedVersion is returned for lock files older than v2.
	ErrUnsupportedResolvedVersion = errors.New("unsupported Package.resolved version")
	// ErrInvalidResolvedFormat is returned when the lock file is not valid JSON
	// or lacks required fields.
	ErrInvalidResolvedFormat = errors.New("invalid Package.resolved format")
)

// PackageResolved is the Package.resolved lock file (schema v2 and v3).
type PackageResolved struct {
	Version int   `json:"version"`
	Pins    []Pin `json:"pins"`
}

// Pin is one resolved package.
type Pin struct {
	Identity string   `json:"identity"`
	Kind     string   `json:"kind"`
	Location string   `json:"location"`
	State    PinState `json:"state"`
}

// PinState is the checked-out state of a pin. Version and Branch are nil when
// absent from the file.
type PinState struct {
	Revision string  `json:"revision"`
	Version  *string `json:"version,omitempty"`
	Branch   *string `json:"branch,omitempty"`
}

type rawPackageResolved struct {
	Version *int   `json:"version"`
	Pins    *[]Pin `json:"pins"`
}

// ParsePackageResolved decodes Package.resolved content. v1 files keep their
// pins under "object" instead of at the root and are rejected with
// ErrUnsupportedResolvedVersion.
func ParsePackageResolved(data []byte) (*PackageResolved, error) {
	var raw rawPackageResolved
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResolvedFormat, err)
	}
	if raw.Version == nil {
		return nil, fmt.Errorf("%w: missing \"version\" field", ErrInvalidResolvedFormat)
	}
	if raw.Pins == nil {
		return nil, fmt.Errorf(
			"%w: %d. Only v2 and v3 are supported",
			ErrUnsupportedResolvedVersion, *raw.Version,
		)
	}

	return &PackageResolved{Version: *raw.Version, Pins: *raw.Pins}, nil
}

// Dependencies converts every pin into a Dependency, in file order.
func (r *PackageResolved) Dependencies() []Dependency {
	deps := make([]Dependency, 0, len(r.Pins))
	for _, pin := range r.Pins {
		deps = append(deps, DependencyFromPin(pin))
	}
	return deps
}
