package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "gooze.dev/pkg/mutconf/internal/model"
)

// pagerChromeLines is the number of lines taken by the pager title and footer.
const pagerChromeLines = 2

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	footerStyle  = lipgloss.NewStyle().Faint(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// TUI implements UI using Bubble Tea for content that does not fit the
// terminal. Short output is printed directly.
type TUI struct {
	*SimpleUI
	output io.Writer
	size   func() (width, height int, ok bool)
	run    func(model tea.Model) error
}

// NewTUI creates a new TUI writing to the command's output.
func NewTUI(cmd *cobra.Command) *TUI {
	output := cmd.OutOrStdout()

	return &TUI{
		SimpleUI: NewSimpleUI(cmd),
		output:   output,
		size: func() (int, int, bool) {
			f, ok := output.(*os.File)
			if !ok {
				return 0, 0, false
			}

			width, height, err := term.GetSize(int(f.Fd()))
			if err != nil {
				return 0, 0, false
			}

			return width, height, true
		},
		run: func(model tea.Model) error {
			program := tea.NewProgram(model, tea.WithOutput(output), tea.WithAltScreen())
			_, err := program.Run()

			return err
		},
	}
}

// DisplayDescriptor shows the descriptor table, paged when it is long.
func (t *TUI) DisplayDescriptor(ctx context.Context, source string, descriptor m.Descriptor) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.page(source, renderDescriptorTable(descriptor))
}

// DisplayDocument shows serialized bytes, paged when they are long.
func (t *TUI) DisplayDocument(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, _, ok := t.size(); !ok {
		return t.SimpleUI.DisplayDocument(ctx, data)
	}

	return t.page("document", string(data))
}

// DisplayDiff shows a colored unified diff, paged when it is long.
func (t *TUI) DisplayDiff(ctx context.Context, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		return t.SimpleUI.DisplayDiff(ctx, diff)
	}

	return t.page("diff", colorizeDiff(diff))
}

func (t *TUI) page(title, content string) error {
	width, height, ok := t.size()

	lines := strings.Count(content, "\n") + pagerChromeLines
	if !ok || lines <= height {
		_, err := fmt.Fprintf(t.output, "%s\n\n%s", titleStyle.Render(title), content)
		return err
	}

	return t.run(newPagerModel(title, content, width, height))
}

func colorizeDiff(diff string) string {
	lines := strings.Split(diff, "\n")

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = titleStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addedStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removedStyle.Render(line)
		}
	}

	return strings.Join(lines, "\n")
}

// pagerModel is the Bubble Tea model scrolling through long output.
type pagerModel struct {
	title    string
	viewport viewport.Model
}

func newPagerModel(title, content string, width, height int) pagerModel {
	vp := viewport.New(width, max(height-pagerChromeLines, 1))
	vp.SetContent(content)

	return pagerModel{title: title, viewport: vp}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return pm, tea.Quit
		}
	case tea.WindowSizeMsg:
		pm.viewport.Width = msg.Width
		pm.viewport.Height = max(msg.Height-pagerChromeLines, 1)
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	footer := fmt.Sprintf("%3.f%% • ↑/↓ scroll • q quit", pm.viewport.ScrollPercent()*100)

	return titleStyle.Render(pm.title) + "\n" + pm.viewport.View() + "\n" + footerStyle.Render(footer)
}
