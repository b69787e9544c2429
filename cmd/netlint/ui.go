package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"netlint/internal/analysis"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	infoTagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list       list.Model
	diags      []analysis.Diagnostic
	failed     int
	unitCount  int
	lastUpdate time.Time
}

type updateMsg struct {
	diags     []analysis.Diagnostic
	unitCount int
	failed    int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.diags = msg.diags
		m.unitCount = msg.unitCount
		m.failed = msg.failed
		m.lastUpdate = time.Now()

		items := make([]list.Item, 0, len(m.diags))
		for _, d := range m.diags {
			items = append(items, item{
				title: fmt.Sprintf("%s %s", d.RuleID, d.Severity),
				desc:  fmt.Sprintf("%s:%d:%d %s", d.Location.File, d.Location.Line, d.Location.Column, d.Message),
			})
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d units",
		m.lastUpdate.Format("15:04:05"), m.unitCount))

	warnings, infos := 0, 0
	for _, d := range m.diags {
		if d.Severity >= analysis.SeverityWarning {
			warnings++
		} else {
			infos++
		}
	}

	var summary string
	if len(m.diags) == 0 && m.failed == 0 {
		summary = successStyle.Render("✅ No findings")
	} else {
		summary = fmt.Sprintf("⚠️  %s | %s",
			warningStyle.Render(fmt.Sprintf("%d Warnings", warnings)),
			infoTagStyle.Render(fmt.Sprintf("%d Info", infos)))
		if m.failed > 0 {
			summary += " | " + warningStyle.Render(fmt.Sprintf("%d Units failed", m.failed))
		}
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("netlint Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Findings"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}

// RunUI starts the interactive findings browser and blocks until it exits.
func (a *App) RunUI(diags []analysis.Diagnostic, failed int) error {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())

	a.mu.Lock()
	a.teaProgram = p
	a.mu.Unlock()

	go func() {
		a.mu.Lock()
		unitCount := len(a.units)
		a.mu.Unlock()
		p.Send(updateMsg{diags: diags, unitCount: unitCount, failed: failed})
	}()

	_, err := p.Run()
	return err
}
