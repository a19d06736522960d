package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "config version\t 1")

	if strings.Contains(output, "mutconf version: unknown") {
		return
	}

	assert.Contains(t, output, "mutconf version")
	assert.Contains(t, output, "go version")
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	cmd := newVersionCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})

	require.Error(t, cmd.Execute())
}
