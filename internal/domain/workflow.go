package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"gooze.dev/pkg/mutconf/internal/adapter"
	"gooze.dev/pkg/mutconf/internal/controller"
	m "gooze.dev/pkg/mutconf/internal/model"
)

// ErrValidationFailed is returned by Validate when at least one file failed.
var ErrValidationFailed = errors.New("descriptor validation failed")

// InitArgs contains the arguments for writing a new descriptor file.
type InitArgs struct {
	Target     m.Path
	Mutator    string
	TestRunner string
}

// ValidateArgs contains the arguments for validating descriptor files.
type ValidateArgs struct {
	Paths      []m.Path
	Parallel   int
	Strictness Strictness
}

// ViewArgs contains the arguments for displaying a (layered) descriptor.
type ViewArgs struct {
	Paths      []m.Path
	Strictness Strictness
}

// ConvertArgs contains the arguments for re-emitting a descriptor.
type ConvertArgs struct {
	Paths      []m.Path
	To         m.Format // derived from Output when empty
	Output     m.Path   // printed through the UI when empty
	Strictness Strictness
}

// DiffArgs contains the arguments for comparing two descriptors.
type DiffArgs struct {
	Left       m.Path
	Right      m.Path
	Strictness Strictness
}

// WatchArgs contains the arguments for re-validating a file on every change.
type WatchArgs struct {
	Path       m.Path
	Strictness Strictness
}

// Workflow defines the use cases exposed by the CLI.
type Workflow interface {
	Init(ctx context.Context, args InitArgs) error
	Validate(ctx context.Context, args ValidateArgs) error
	View(ctx context.Context, args ViewArgs) error
	Convert(ctx context.Context, args ConvertArgs) error
	Diff(ctx context.Context, args DiffArgs) error
	Watch(ctx context.Context, args WatchArgs) error
}

type workflow struct {
	adapter.DocumentFS
	adapter.FileWatcher
	Loader
	Serializer
	ui controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fs adapter.DocumentFS,
	watcher adapter.FileWatcher,
	loader Loader,
	serializer Serializer,
	ui controller.UI,
) Workflow {
	return &workflow{
		DocumentFS:  fs,
		FileWatcher: watcher,
		Loader:      loader,
		Serializer:  serializer,
		ui:          ui,
	}
}

func (w *workflow) Init(ctx context.Context, args InitArgs) error {
	format, err := m.FormatFromPath(args.Target)
	if err != nil {
		return err
	}

	descriptor, err := m.NewDescriptor(args.Mutator, args.TestRunner)
	if err != nil {
		return err
	}

	data, err := w.Serialize(descriptor, format)
	if err != nil {
		return err
	}

	if err := w.CreateFile(args.Target, data); err != nil {
		return fmt.Errorf("failed to write descriptor file: %w", err)
	}

	slog.Info("wrote descriptor", "path", args.Target, "format", format)
	w.ui.DisplayInfo(ctx, fmt.Sprintf("Created %s", args.Target))

	return nil
}

func (w *workflow) Validate(ctx context.Context, args ValidateArgs) error {
	if len(args.Paths) == 0 {
		return m.NewConfigurationError("", m.ErrMissingField, errors.New("no descriptor file given"))
	}

	results := make([]m.ValidationResult, len(args.Paths))

	var group errgroup.Group
	if args.Parallel > 0 {
		group.SetLimit(args.Parallel)
	}

	for i, path := range args.Paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			descriptor, err := w.Load(ctx, path, WithStrictness(args.Strictness))
			results[i] = m.ValidationResult{Path: path, Descriptor: descriptor, Err: err}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if err := w.ui.DisplayValidation(ctx, results); err != nil {
		return err
	}

	failed := 0

	for _, result := range results {
		if !result.OK() {
			failed++

			slog.Error("descriptor failed validation", "path", result.Path, "error", result.Err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrValidationFailed, failed, len(results))
	}

	return nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	descriptor, err := w.LoadLayered(ctx, args.Paths, WithStrictness(args.Strictness))
	if err != nil {
		return err
	}

	return w.ui.DisplayDescriptor(ctx, joinPaths(args.Paths), descriptor)
}

func (w *workflow) Convert(ctx context.Context, args ConvertArgs) error {
	format := args.To
	if format == "" {
		if args.Output == "" {
			format = m.FormatYAML
		} else {
			detected, err := m.FormatFromPath(args.Output)
			if err != nil {
				return err
			}

			format = detected
		}
	}

	descriptor, err := w.LoadLayered(ctx, args.Paths, WithStrictness(args.Strictness))
	if err != nil {
		return err
	}

	data, err := w.Serialize(descriptor, format)
	if err != nil {
		return err
	}

	if args.Output == "" {
		return w.ui.DisplayDocument(ctx, data)
	}

	if err := w.WriteFile(args.Output, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", args.Output, err)
	}

	w.ui.DisplayInfo(ctx, fmt.Sprintf("Wrote %s (%s)", args.Output, format))

	return nil
}

func (w *workflow) Diff(ctx context.Context, args DiffArgs) error {
	left, err := w.Load(ctx, args.Left, WithStrictness(args.Strictness))
	if err != nil {
		return err
	}

	right, err := w.Load(ctx, args.Right, WithStrictness(args.Strictness))
	if err != nil {
		return err
	}

	diff, err := w.Serializer.Diff(left, right, string(args.Left), string(args.Right))
	if err != nil {
		return err
	}

	return w.ui.DisplayDiff(ctx, diff)
}

// Watch validates the file once, then again after each change, until ctx is
// done. Validation failures are displayed, not returned.
func (w *workflow) Watch(ctx context.Context, args WatchArgs) error {
	changes, err := w.FileWatcher.Watch(ctx, args.Path)
	if err != nil {
		return err
	}

	if err := w.revalidate(ctx, args); err != nil {
		return err
	}

	for range changes {
		if err := w.revalidate(ctx, args); err != nil {
			return err
		}
	}

	slog.Debug("stopped watching descriptor", "path", args.Path)

	return nil
}

func (w *workflow) revalidate(ctx context.Context, args WatchArgs) error {
	descriptor, err := w.Load(ctx, args.Path, WithStrictness(args.Strictness))
	if errors.Is(err, context.Canceled) {
		return nil
	}

	err = w.ui.DisplayWatchEvent(ctx, m.ValidationResult{Path: args.Path, Descriptor: descriptor, Err: err})
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func joinPaths(paths []m.Path) string {
	parts := make([]string, 0, len(paths))
	for _, path := range paths {
		parts = append(parts, string(path))
	}

	return strings.Join(parts, " + ")
}
