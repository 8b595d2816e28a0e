package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PageStatus describes how a page's published output relates to its source
type PageStatus int

const (
	// StatusFresh means the output matches the last build of the source
	StatusFresh PageStatus = iota
	// StatusStale means the source or template changed since the last build
	StatusStale
	// StatusNew means the page has never been built
	StatusNew
	// StatusBroken means the page cannot be rendered
	StatusBroken
)

func (s PageStatus) String() string {
	switch s {
	case StatusFresh:
		return "✓ fresh"
	case StatusStale:
		return "→ stale"
	case StatusNew:
		return "+ new"
	case StatusBroken:
		return "⚠ broken"
	default:
		return "unknown"
	}
}

// BrowseData holds every page of the site and its status
type BrowseData struct {
	Pages []PageInfo
}

// PageInfo is one row of the page browser
type PageInfo struct {
	Source string
	Output string
	Title  string
	Status PageStatus
}

// BrowseMsg is sent when browse data is ready
type BrowseMsg struct {
	Data *BrowseData
	Err  error
}

// DiffMsg is sent when diff preview is ready
type DiffMsg struct {
	Content string
	Err     error
}

// DiffFunc renders the rebuild diff for a page's source
type DiffFunc func(source string) (string, error)

type browseModel struct {
	table       table.Model
	viewport    viewport.Model
	data        *BrowseData
	err         error
	ready       bool
	showingDiff bool
	selected    *PageInfo
	diffFunc    DiffFunc
}

// InitBrowseModel creates a new page browser model
func InitBrowseModel(diffFunc DiffFunc) browseModel {
	columns := []table.Column{
		{Title: "Page", Width: 40},
		{Title: "Title", Width: 30},
		{Title: "Status", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1)

	return browseModel{
		table:    t,
		viewport: vp,
		diffFunc: diffFunc,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6

	case tea.KeyMsg:
		if m.showingDiff {
			switch msg.String() {
			case "q", "esc":
				m.showingDiff = false
				return m, nil
			case "up", "k", "down", "j", "pgup", "pgdown":
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k", "down", "j":
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		case "enter", "d":
			if m.data != nil && len(m.data.Pages) > 0 {
				idx := m.table.Cursor()
				if idx < len(m.data.Pages) {
					m.selected = &m.data.Pages[idx]
					m.showingDiff = true
					m.viewport.SetContent("Rendering " + m.selected.Source + "...")
					return m, m.loadDiff(m.selected.Source)
				}
			}
			return m, nil
		}

	case BrowseMsg:
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err

		if m.data != nil {
			rows := make([]table.Row, 0, len(m.data.Pages))
			for _, page := range m.data.Pages {
				rows = append(rows, table.Row{page.Source, page.Title, page.Status.String()})
			}
			m.table.SetRows(rows)
		}
		return m, nil

	case DiffMsg:
		content := msg.Content
		if msg.Err != nil {
			content = errorStyle.Render("✗ " + msg.Err.Error())
		} else if content == "" {
			content = helpStyle.Render("No changes: the published page is up to date")
		}
		m.viewport.SetContent(content)
		m.viewport.GotoTop()
		return m, nil
	}

	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("mdsite pages"))
	b.WriteString("\n\n")

	if m.err != nil {
		return errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready || m.data == nil {
		return b.String()
	}

	if m.showingDiff {
		b.WriteString(labelStyle.Render("Rebuild preview: " + m.selected.Source))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("Pages: %d", len(m.data.Pages))))
	b.WriteString("\n\n")
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑/k up • ↓/j down • enter/d preview • q quit"))
	b.WriteString("\n")

	return b.String()
}

// loadDiff renders the selected page's diff off the update loop
func (m browseModel) loadDiff(source string) tea.Cmd {
	return func() tea.Msg {
		if m.diffFunc == nil {
			return DiffMsg{}
		}
		content, err := m.diffFunc(source)
		return DiffMsg{Content: content, Err: err}
	}
}
