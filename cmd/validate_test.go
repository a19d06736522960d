package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gooze.dev/pkg/mutconf/internal/domain"
	domainmocks "gooze.dev/pkg/mutconf/internal/domain/mocks"
	m "gooze.dev/pkg/mutconf/internal/model"
)

func TestValidateCmd_PositionalFiles(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newValidateCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Validate", mock.Anything, mock.MatchedBy(func(args domain.ValidateArgs) bool {
		return slices.Equal(args.Paths, []m.Path{"jest.yaml", "mocha.json"}) && args.Parallel == 2
	})).Return(nil)

	cmd.SetArgs([]string{"validate", "jest.yaml", "mocha.json", "-p", "2", "--log-file", filepath.Join(t.TempDir(), "mutconf.log")})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestValidateCmd_FallsBackToConfigFiles(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newValidateCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Validate", mock.Anything, mock.MatchedBy(func(args domain.ValidateArgs) bool {
		return slices.Equal(args.Paths, []m.Path{"stryker.toml"}) && args.Parallel == defaultValidateParallel
	})).Return(nil)

	cmd.SetArgs([]string{"validate", "-c", "stryker.toml", "--log-file", filepath.Join(t.TempDir(), "mutconf.log")})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestValidateCmd_PropagatesFailure(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newValidateCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Validate", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: 1 of 1 file(s)", domain.ErrValidationFailed))

	cmd.SetArgs([]string{"validate", "broken.yaml", "--log-file", filepath.Join(t.TempDir(), "mutconf.log")})
	err := cmd.Execute()
	require.ErrorIs(t, err, domain.ErrValidationFailed)
}
