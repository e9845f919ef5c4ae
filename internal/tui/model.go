// Package tui is a full-screen terminal front end over the shell: a path
// input, a statistics grid whose rows double as field toggles, and a status bar.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KaramelBytes/sheetstat/internal/analysis"
	"github.com/KaramelBytes/sheetstat/internal/shell"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusFrame = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true).PaddingLeft(1)
)

// Model is the bubbletea model. All shell calls happen inside Update.
type Model struct {
	sh        *shell.Shell
	input     textinput.Model
	editing   bool
	cursor    int
	precision int
	canvas    string
	status    shell.Status
	width     int
}

// New builds the model. canvasPath is shown after a draw so the user knows
// where the chart went.
func New(sh *shell.Shell, precision int, canvasPath string) Model {
	ti := textinput.New()
	ti.Placeholder = "path/to/workbook.xlsx"
	ti.Prompt = "File: "
	ti.CharLimit = 4096
	m := Model{sh: sh, input: ti, precision: precision, canvas: canvasPath, status: sh.Last()}
	if sh.Phase() == shell.NoFile {
		m.editing = true
		m.input.Focus()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.editing {
		return textinput.Blink
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(20, msg.Width-10)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.editing {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		m.input.Blur()
		m.dispatch(shell.SelectFile{Path: m.input.Value()})
		return m, nil
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := m.sh.Fields()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "o":
		m.editing = true
		m.input.SetValue(m.sh.Path())
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case "l":
		m.dispatch(shell.LoadFile{})
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(fields)-1 {
			m.cursor++
		}
	case " ", "space", "enter", "x":
		if m.cursor < len(fields) {
			m.dispatch(shell.ToggleField{Field: fields[m.cursor]})
		}
	case "d":
		m.dispatch(shell.DrawChart{})
	case "u":
		m.dispatch(shell.UnloadData{})
		m.cursor = 0
	}
	return m, nil
}

func (m *Model) dispatch(a shell.Action) {
	m.status = m.sh.Dispatch(a)
}

// Status returns the status line currently displayed.
func (m Model) Status() shell.Status { return m.status }

// Cursor returns the index of the highlighted field.
func (m Model) Cursor() int { return m.cursor }

// Editing reports whether the path input has focus.
func (m Model) Editing() bool { return m.editing }

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("sheetstat"))
	b.WriteString("  ")
	b.WriteString(helpStyle.Render(m.sh.Phase().String()))
	b.WriteString("\n\n")

	if m.editing {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: select  esc: cancel"))
		b.WriteString("\n")
	} else if p := m.sh.Path(); p != "" {
		b.WriteString("File: " + p + "\n")
	}

	if t := m.sh.Stats(); t != nil && len(t.Fields) > 0 {
		b.WriteString("\n")
		cursor := ""
		if m.cursor < len(t.Fields) {
			cursor = t.Fields[m.cursor]
		}
		b.WriteString(t.Grid(analysis.GridOptions{
			Precision: m.precision,
			Selected:  m.sh.IsSelected,
			Cursor:    cursor,
		}))
	}
	if fig := m.sh.Figure(); fig != nil && m.canvas != "" {
		b.WriteString("\nChart: " + fig.Title() + " -> " + m.canvas + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.keyHelp()))
	b.WriteString("\n")
	b.WriteString(statusFrame.Render(styleFor(m.status).Render(m.status.String())))
	b.WriteString("\n")
	return b.String()
}

func (m Model) keyHelp() string {
	switch m.sh.Phase() {
	case shell.NoFile:
		return "o: select file  q: quit"
	case shell.FileSelected:
		return "o: select file  l: load  q: quit"
	default:
		return "↑/↓: move  space: toggle  d: draw  u: unload  o: select file  q: quit"
	}
}

func styleFor(st shell.Status) lipgloss.Style {
	switch st.Level {
	case shell.Warning:
		return warnStyle
	case shell.Error:
		return errorStyle
	default:
		return infoStyle
	}
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
