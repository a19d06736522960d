// Package controller provides output adapters for displaying descriptors.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "gooze.dev/pkg/mutconf/internal/model"
)

// UI defines the interface for displaying descriptors and load outcomes.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayDescriptor(ctx context.Context, source string, descriptor m.Descriptor) error
	DisplayValidation(ctx context.Context, results []m.ValidationResult) error
	DisplayDocument(ctx context.Context, data []byte) error
	DisplayDiff(ctx context.Context, diff string) error
	DisplayWatchEvent(ctx context.Context, result m.ValidationResult) error
	DisplayInfo(ctx context.Context, message string)
}

// NewUI returns the interactive TUI when stdout is a terminal and the plain
// SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
