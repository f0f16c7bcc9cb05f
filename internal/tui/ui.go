// Package tui
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

type quitMessage struct{}

type UIModel struct {
	viewer      tea.Model
	help        tea.Model
	overlay     tea.Model
	helpVisible bool
}

func (m *UIModel) Init() tea.Cmd {
	cmds := []tea.Cmd{}

	m.viewer = &viewerModel{
		apiHost: "localhost:8080",
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("205")))),
	}
	cmds = append(cmds, m.viewer.Init())

	m.help = &helpModel{}
	cmds = append(cmds, m.help.Init())

	m.helpVisible = false
	m.overlay = overlay.New(m.help, m.viewer, overlay.Center, overlay.Center, 0, 0)
	cmds = append(cmds, m.overlay.Init())

	return tea.Batch(cmds...)
}

func (m *UIModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{}

	passToViewer := func() {
		vm, vmCmd := m.viewer.Update(message)
		m.viewer = vm
		cmds = append(cmds, vmCmd)
	}

	switch msg := message.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.viewer.Update(quitMessage{})
			return m, tea.Quit
		case "esc":
			m.helpVisible = false
			return m, nil
		case "?":
			m.helpVisible = true
			return m, nil
		}
		if !m.helpVisible {
			passToViewer()
		}
	case tea.MouseMsg:
		if !m.helpVisible {
			passToViewer()
		}
	default:
		passToViewer()
	}

	return m, tea.Batch(cmds...)
}

func (m *UIModel) View() string {
	if m.helpVisible {
		return m.overlay.View()
	}
	return m.viewer.View()
}
