package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gooze.dev/pkg/mutconf/internal/domain"
	domainmocks "gooze.dev/pkg/mutconf/internal/domain/mocks"
	m "gooze.dev/pkg/mutconf/internal/model"
)

func TestWatchCmd_WatchesGivenFile(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newWatchCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Watch", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx != nil && ctx.Err() == nil
	}), mock.MatchedBy(func(args domain.WatchArgs) bool {
		return args.Path == m.Path("stryker.yaml") && args.Strictness == domain.Lenient
	})).Return(nil)

	cmd.SetArgs([]string{"watch", "stryker.yaml", "--lenient", "--log-file", filepath.Join(t.TempDir(), "mutconf.log")})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestWatchCmd_DefaultsToFirstConfigFile(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newWatchCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Watch", mock.Anything, mock.MatchedBy(func(args domain.WatchArgs) bool {
		return args.Path == m.Path("base.yaml")
	})).Return(nil)

	cmd.SetArgs([]string{"watch", "-c", "base.yaml", "-c", "local.yaml", "--log-file", filepath.Join(t.TempDir(), "mutconf.log")})
	err := cmd.Execute()
	require.NoError(t, err)
}
