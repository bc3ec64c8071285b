// Package tui provides the interactive preset-query browser.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dataroast/coffeesales/pkg/report"
	"github.com/dataroast/coffeesales/pkg/salesdb"
)

// maxResultRows caps how many result rows are rendered on screen.
const maxResultRows = 20

// QueryMode represents the current mode of the query UI
type QueryMode int

const (
	ModeList QueryMode = iota
	ModeRunning
	ModeResult
	ModeError
)

// PresetItem represents a preset query in the list
type PresetItem struct {
	Preset report.Preset
}

func (i PresetItem) FilterValue() string { return i.Preset.Name }
func (i PresetItem) Title() string {
	return fmt.Sprintf("%2d. %s", i.Preset.ID, i.Preset.Name)
}
func (i PresetItem) Description() string {
	return mutedStyle.Render(i.Preset.Description)
}

// PresetItemDelegate is a custom delegate for preset list items
type PresetItemDelegate struct{}

func (d PresetItemDelegate) Height() int                             { return 2 }
func (d PresetItemDelegate) Spacing() int                            { return 1 }
func (d PresetItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d PresetItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(PresetItem)
	if !ok {
		return
	}

	var s string
	if index == m.Index() {
		s = selectedItemStyle.Render("▸ " + i.Title() + "\n  " + i.Description())
	} else {
		s = unselectedItemStyle.Render("  " + i.Title() + "\n  " + i.Description())
	}

	_, _ = fmt.Fprint(w, s)
}

// QueryModel is the main Bubbletea model for the query browser
type QueryModel struct {
	mode   QueryMode
	list   list.Model
	dbURL  string
	pool   *pgxpool.Pool
	preset report.Preset
	result *report.Result
	err    error
	width  int
	height int
}

// NewQueryModel creates a new query browser model
func NewQueryModel(dbURL string) QueryModel {
	items := make([]list.Item, 0, len(report.Presets()))
	for _, p := range report.Presets() {
		items = append(items, PresetItem{Preset: p})
	}

	l := list.New(items, PresetItemDelegate{}, 0, 0)
	l.Title = "Coffee Sales Queries"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return QueryModel{
		mode:  ModeList,
		list:  l,
		dbURL: dbURL,
	}
}

// Init initializes the model
func (m QueryModel) Init() tea.Cmd {
	return tea.Batch(
		connectCmd(m.dbURL),
		tea.EnterAltScreen,
	)
}

// Messages
type connectedMsg struct {
	pool *pgxpool.Pool
}

type resultMsg struct {
	preset report.Preset
	result *report.Result
}

type errorMsg struct {
	err error
}

// Commands
func connectCmd(dbURL string) tea.Cmd {
	return func() tea.Msg {
		db, err := salesdb.ConnectWithURL(context.Background(), dbURL)
		if err != nil {
			return errorMsg{err: err}
		}
		return connectedMsg{pool: db.Pool()}
	}
}

func runPresetCmd(pool *pgxpool.Pool, preset report.Preset) tea.Cmd {
	return func() tea.Msg {
		result, err := report.Run(context.Background(), pool, preset.SQL)
		if err != nil {
			return errorMsg{err: err}
		}
		return resultMsg{preset: preset, result: result}
	}
}

// Update handles messages
func (m QueryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case connectedMsg:
		m.pool = msg.pool
		return m, nil

	case resultMsg:
		m.mode = ModeResult
		m.preset = msg.preset
		m.result = msg.result
		return m, nil

	case errorMsg:
		m.mode = ModeError
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.mode == ModeList || m.mode == ModeError {
				if m.pool != nil {
					m.pool.Close()
				}
				return m, tea.Quit
			}

		case "esc":
			if m.mode == ModeResult || m.mode == ModeError {
				m.mode = ModeList
				return m, nil
			}

		case "enter":
			if m.mode == ModeList && m.pool != nil {
				if item, ok := m.list.SelectedItem().(PresetItem); ok {
					m.mode = ModeRunning
					m.preset = item.Preset
					return m, runPresetCmd(m.pool, item.Preset)
				}
			}
		}
	}

	if m.mode == ModeList {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current mode
func (m QueryModel) View() string {
	switch m.mode {
	case ModeRunning:
		return boxStyle.Render(infoStyle.Render("Running: " + m.preset.Name + "…"))

	case ModeResult:
		return m.resultView()

	case ModeError:
		var b strings.Builder
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(FormatKey("esc", "back") + " • " + FormatKey("q", "quit")))
		return b.String()

	default:
		var b strings.Builder
		b.WriteString(m.list.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(FormatKey("enter", "run") + " • " + FormatKey("/", "filter") + " • " + FormatKey("q", "quit")))
		return b.String()
	}
}

func (m QueryModel) resultView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.preset.Name))
	b.WriteString("\n")

	if len(m.result.Rows) == 0 {
		b.WriteString(mutedStyle.Render("No rows"))
	} else {
		b.WriteString(tableStyle.Render(renderTable(m.result)))
		b.WriteString("\n")
		if len(m.result.Rows) > maxResultRows {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("Showing %d of %d rows", maxResultRows, len(m.result.Rows))))
		} else {
			b.WriteString(successStyle.Render(fmt.Sprintf("%d row(s)", len(m.result.Rows))))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(FormatKey("esc", "back") + " • " + FormatKey("q", "quit")))
	return b.String()
}

func renderTable(result *report.Result) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, strings.ToUpper(strings.Join(result.Columns, "\t")))

	rows := result.Rows
	if len(rows) > maxResultRows {
		rows = rows[:maxResultRows]
	}
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()

	return strings.TrimRight(sb.String(), "\n")
}

// RunQueryUI starts the interactive query browser
func RunQueryUI(dbURL string) error {
	model := NewQueryModel(dbURL)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run query UI: %w", err)
	}
	return nil
}
