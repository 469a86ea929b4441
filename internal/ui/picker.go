package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Quit   key.Binding
}

var pickerKeys = pickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j", "tab"),
		key.WithHelp("↓/j", "down"),
	),
	Choose: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "choose"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	pickerTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	pickerCursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	pickerOptionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pickerHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pickerSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// pickerModel is the Bubbletea model behind PickOption
type pickerModel struct {
	title     string
	options   []string
	cursor    int
	chosen    int
	cancelled bool
}

func newPickerModel(title string, options []string, defaultIndex int) pickerModel {
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}
	return pickerModel{
		title:   title,
		options: options,
		cursor:  defaultIndex,
		chosen:  -1,
	}
}

// Init implements tea.Model
func (m pickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, pickerKeys.Quit):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(keyMsg, pickerKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = len(m.options) - 1
		}
	case key.Matches(keyMsg, pickerKeys.Down):
		m.cursor = (m.cursor + 1) % len(m.options)
	case key.Matches(keyMsg, pickerKeys.Choose):
		m.chosen = m.cursor
		return m, tea.Quit
	default:
		// digits jump straight to an option
		if s := keyMsg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			n := int(s[0] - '1')
			if n < len(m.options) {
				m.chosen = n
				m.cursor = n
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// View implements tea.Model
func (m pickerModel) View() string {
	if m.chosen >= 0 {
		return pickerSelectedStyle.Render("✔ "+m.options[m.chosen]) + "\n"
	}
	if m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, option := range m.options {
		if i == m.cursor {
			b.WriteString(pickerCursorStyle.Render(fmt.Sprintf("> %d) %s", i+1, option)))
		} else {
			b.WriteString(pickerOptionStyle.Render(fmt.Sprintf("  %d) %s", i+1, option)))
		}
		b.WriteString("\n")
	}

	help := []string{}
	for _, binding := range []key.Binding{pickerKeys.Up, pickerKeys.Down, pickerKeys.Choose, pickerKeys.Quit} {
		h := binding.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString("\n")
	b.WriteString(pickerHelpStyle.Render(strings.Join(help, " • ")))
	b.WriteString("\n")
	return b.String()
}

// PickOption shows an arrow-key menu on a terminal and returns the chosen
// index. It has the same contract as SelectOption.
func PickOption(title string, options []string, defaultIndex int, input io.Reader, output io.Writer) (int, error) {
	if len(options) == 0 {
		return -1, errors.New("no options to select from")
	}

	program := tea.NewProgram(newPickerModel(title, options, defaultIndex),
		tea.WithInput(input),
		tea.WithOutput(output),
	)

	final, err := program.Run()
	if err != nil {
		return -1, err
	}

	m, ok := final.(pickerModel)
	if !ok || m.cancelled || m.chosen < 0 {
		return -1, ErrSelectionCancelled
	}
	return m.chosen, nil
}
