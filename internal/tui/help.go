package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type helpBinding struct {
	key  string
	desc string
}

var helpBindings = []helpBinding{
	{"mouse / arrows", "move the hover cursor"},
	{"x", "move the cursor off the chart"},
	{"r", "cycle chart rotation (0° → 90° → 180° → -90°)"},
	{"s", "toggle snap-to-band"},
	{"t", "cycle tooltip stick mode"},
	{"ctrl+s", "save the current layout"},
	{"?", "show this help"},
	{"esc", "close this help"},
	{"q", "quit"},
}

type helpModel struct{}

func (h *helpModel) Init() tea.Cmd {
	return nil
}

func (h *helpModel) Update(tea.Msg) (tea.Model, tea.Cmd) {
	return h, nil
}

func (h *helpModel) View() string {
	var sb strings.Builder
	sb.WriteString("Chart Hover Controls\n\n")
	for _, b := range helpBindings {
		sb.WriteString(helpKeyStyle.Render("[" + b.key + "]"))
		sb.WriteString(" ")
		sb.WriteString(helpDescStyle.Render(b.desc))
		sb.WriteString("\n")
	}
	sb.WriteString("\nPress [esc] to close")
	return helpBoxStyle.Render(sb.String())
}
