// Package confirm implements the interactive selection screen that lets a
// human toggle which scan candidates actually get deleted. It is the
// "interactive prompt loop" the core discovery/safety pipeline excludes:
// the core never imports this package.
package confirm

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nextprune/nextprune/internal/humanize"
	"github.com/nextprune/nextprune/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Padding(0, 1)

	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	unselectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	cursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#874BFD")).Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

type screen struct {
	items    []model.ScanItem
	selected []bool
	pinned   []bool
	cursor   int
	now      time.Time
	done     bool
	canceled bool
}

// Run launches a bubbletea program listing items (path, human size, age,
// cleanup type) with every item preselected. Space toggles the item under
// the cursor, enter confirms the current selection, q/esc cancels and
// returns the original items unchanged with a nil error. alwaysDelete names
// the set of item paths that matched an always-delete pattern: they are
// preselected like everything else, but space/n cannot deselect them — they
// are always part of the returned selection.
func Run(items []model.ScanItem, alwaysDelete map[string]bool) ([]model.ScanItem, error) {
	if len(items) == 0 {
		return items, nil
	}

	m := screen{
		items:    items,
		selected: make([]bool, len(items)),
		pinned:   make([]bool, len(items)),
		now:      time.Now(),
	}
	for i := range m.selected {
		m.selected[i] = true
		m.pinned[i] = alwaysDelete[items[i].Path]
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := result.(screen)
	if final.canceled {
		return items, nil
	}

	out := make([]model.ScanItem, 0, len(items))
	for i, keep := range final.selected {
		if keep || final.pinned[i] {
			out = append(out, final.items[i])
		}
	}
	return out, nil
}

func (m screen) Init() tea.Cmd {
	return nil
}

func (m screen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.canceled = true
			m.done = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ":
			if !m.pinned[m.cursor] {
				m.selected[m.cursor] = !m.selected[m.cursor]
			}
		case "a":
			for i := range m.selected {
				m.selected[i] = true
			}
		case "n":
			for i := range m.selected {
				if !m.pinned[i] {
					m.selected[i] = false
				}
			}
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m screen) View() string {
	if m.done {
		return ""
	}

	var b string
	b += titleStyle.Render(fmt.Sprintf("Select candidates to delete (%d found)", len(m.items))) + "\n\n"

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		box := "[ ]"
		style := unselectedStyle
		if m.selected[i] {
			box = "[x]"
			style = selectedStyle
		}

		note := ""
		if m.pinned[i] {
			box = "[x]"
			note = "(always-delete)"
		}

		age := humanize.TimeAgo(item.Stats.MTime, m.now)
		line := fmt.Sprintf("%s %s  %-10s  %-8s  %-10s  %s", box, item.Path,
			humanize.Bytes(float64(item.Stats.Size)), age, item.CleanupType, note)
		b += cursor + style.Render(line) + "\n"
	}

	b += "\n" + helpStyle.Render("space toggle · a all · n none · enter confirm · q/esc cancel") + "\n"
	return b
}
