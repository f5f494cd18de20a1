//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/swiftoutdated/internal/domain/commands"
)

// StubCheckCommand is a stub implementation of commands.Check.
type StubCheckCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           *commands.CheckResult
	LastOpts         commands.CheckOptions
}

var _ commands.Check = (*StubCheckCommand)(nil)

func (s *StubCheckCommand) Execute(_ context.Context, opts commands.CheckOptions) (*commands.CheckResult, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Result == nil {
		return &commands.CheckResult{}, nil
	}
	return s.Result, nil
}

// StubRequirementsCommand is a stub implementation of commands.Requirements.
type StubRequirementsCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           *commands.RequirementsResult
	LastPath         string
}

var _ commands.Requirements = (*StubRequirementsCommand)(nil)

func (s *StubRequirementsCommand) Execute(_ context.Context, path string) (*commands.RequirementsResult, error) {
	s.ExecuteCallCount++
	s.LastPath = path
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Result == nil {
		return &commands.RequirementsResult{}, nil
	}
	return s.Result, nil
}
