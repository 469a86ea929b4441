package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m pickerModel, msgs ...tea.KeyMsg) (pickerModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(pickerModel)
		require.True(t, ok)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPickerModel_Navigation(t *testing.T) {
	m := newPickerModel("Pick one", []string{"feat: a", "fix: b", "chore: c"}, 0)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)

	m, _ = press(t, m, runes("j"), runes("j"))
	assert.Equal(t, 0, m.cursor, "down wraps around")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 2, m.cursor, "up wraps around")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.chosen)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "chore: c")
}

func TestPickerModel_DigitSelects(t *testing.T) {
	m := newPickerModel("Pick one", []string{"a", "b", "c"}, 0)

	m, _ = press(t, m, runes("3"))
	assert.Equal(t, 2, m.chosen)

	m = newPickerModel("Pick one", []string{"a", "b"}, 0)
	m, _ = press(t, m, runes("7"))
	assert.Equal(t, -1, m.chosen, "out of range digit is ignored")
}

func TestPickerModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := newPickerModel("Pick one", []string{"a"}, 0)
		m, cmd := press(t, m, msg)
		assert.True(t, m.cancelled, msg.String())
		assert.NotNil(t, cmd)
		assert.Empty(t, m.View())
	}
}

func TestPickerModel_DefaultClamped(t *testing.T) {
	assert.Equal(t, 0, newPickerModel("t", []string{"a", "b"}, 5).cursor)
	assert.Equal(t, 1, newPickerModel("t", []string{"a", "b"}, 1).cursor)
}

func TestPickerModel_View(t *testing.T) {
	view := newPickerModel("Choose a commit message", []string{"feat: a", "fix: b"}, 1).View()

	assert.Contains(t, view, "Choose a commit message")
	assert.Contains(t, view, "1) feat: a")
	assert.Contains(t, view, "> 2) fix: b")
	assert.Contains(t, view, "enter choose")
}

func TestPickOption_NoOptions(t *testing.T) {
	_, err := PickOption("t", nil, 0, nil, nil)
	assert.Error(t, err)
}
