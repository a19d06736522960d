package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "gooze.dev/pkg/mutconf/internal/model"
)

const (
	noneLabel    = "(none)"
	statusOK     = "ok"
	statusFailed = "failed"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayDescriptor prints every setting of the descriptor as a table.
func (s *SimpleUI) DisplayDescriptor(ctx context.Context, source string, descriptor m.Descriptor) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n\n%s", source, renderDescriptorTable(descriptor))

	return nil
}

// DisplayValidation prints one row per file.
func (s *SimpleUI) DisplayValidation(ctx context.Context, results []m.ValidationResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderValidationTable(results))

	return nil
}

// DisplayDocument prints serialized descriptor bytes unchanged.
func (s *SimpleUI) DisplayDocument(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.cmd.OutOrStdout().Write(data)

	return err
}

// DisplayDiff prints a unified diff, or a note when there is none.
func (s *SimpleUI) DisplayDiff(ctx context.Context, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		s.printf("Descriptors are identical\n")
		return nil
	}

	s.printf("%s", diff)

	return nil
}

// DisplayWatchEvent prints a single status line for a re-validation.
func (s *SimpleUI) DisplayWatchEvent(ctx context.Context, result m.ValidationResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n", watchLine(result))

	return nil
}

// DisplayInfo prints a message line.
func (s *SimpleUI) DisplayInfo(ctx context.Context, message string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", message)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// descriptorRows lists key/value pairs in canonical key order followed by
// tool options sorted by tool and option name.
func descriptorRows(descriptor m.Descriptor) [][]string {
	rows := [][]string{
		{m.KeyMutator, descriptor.Mutator()},
		{m.KeyPackageManager, descriptor.PackageManager()},
		{m.KeyReporters, joinOrNone(descriptor.Reporters())},
		{m.KeyTestRunner, descriptor.TestRunner()},
		{m.KeyTranspilers, joinOrNone(descriptor.Transpilers())},
		{m.KeyTestFramework, valueOrNone(descriptor.TestFramework())},
		{m.KeyCoverageAnalysis, descriptor.CoverageAnalysis().String()},
	}

	for _, tool := range descriptor.Tools() {
		options, _ := descriptor.ToolOptions(tool)

		names := make([]string, 0, len(options))
		for name := range options {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			rows = append(rows, []string{tool + "." + name, fmt.Sprintf("%v", options[name])})
		}
	}

	return rows
}

func renderDescriptorTable(descriptor m.Descriptor) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Key", "Value"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
	table.AppendBulk(descriptorRows(descriptor))
	table.Render()

	return tableBuffer.String()
}

func renderValidationTable(results []m.ValidationResult) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Status", "Detail"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	failed := 0

	for _, result := range results {
		status, detail := statusOK, summary(result.Descriptor)
		if !result.OK() {
			status, detail = statusFailed, result.Err.Error()
			failed++
		}

		table.Append([]string{string(result.Path), status, detail})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(results)),
		fmt.Sprintf("%d failed", failed),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

var (
	okLabel     = color.New(color.FgGreen).SprintFunc()
	failedLabel = color.New(color.FgRed, color.Bold).SprintFunc()
)

// watchLine colors the status when stdout is a terminal; color disables
// itself otherwise.
func watchLine(result m.ValidationResult) string {
	if !result.OK() {
		return fmt.Sprintf("%s: %s: %v", result.Path, failedLabel(statusFailed), result.Err)
	}

	return fmt.Sprintf("%s: %s (%s)", result.Path, okLabel(statusOK), summary(result.Descriptor))
}

func summary(descriptor m.Descriptor) string {
	return fmt.Sprintf("mutator=%s testRunner=%s", descriptor.Mutator(), descriptor.TestRunner())
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return noneLabel
	}

	return strings.Join(values, ", ")
}

func valueOrNone(value string) string {
	if value == "" {
		return noneLabel
	}

	return value
}
