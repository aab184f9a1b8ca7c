package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Manto/llm-if-wrapper/internal/config"
	"github.com/Manto/llm-if-wrapper/internal/session"
)

type dialogField int

const (
	fieldGame dialogField = iota
	fieldTone
	fieldProvider
	fieldCount
)

// startDialog holds the pre-session selection.
type startDialog struct {
	field    dialogField
	selected session.Settings
}

func newStartDialog(initial session.Settings) startDialog {
	return startDialog{field: fieldGame, selected: initial}
}

func (d *startDialog) moveField(delta int) {
	next := (int(d.field) + delta) % int(fieldCount)
	if next < 0 {
		next += int(fieldCount)
	}
	d.field = dialogField(next)
}

func (d *startDialog) cycle(delta int) {
	switch d.field {
	case fieldGame:
		d.selected.GameID = cycleString(config.IDs(config.Games), d.selected.GameID, delta)
	case fieldTone:
		d.selected.Tone = cycleString(config.IDs(config.Tones), d.selected.Tone, delta)
	case fieldProvider:
		d.selected.Provider = cycleString(config.IDs(config.Providers), d.selected.Provider, delta)
	}
}

func (m *Model) renderDialog() string {
	contentWidth := min(max(m.width-8, 44), 72)
	d := m.dialog

	rows := []struct {
		field   dialogField
		label   string
		options []config.Option
		value   string
	}{
		{fieldGame, "Game", config.Games, d.selected.GameID},
		{fieldTone, "Tone", config.Tones, d.selected.Tone},
		{fieldProvider, "LLM", config.Providers, d.selected.Provider},
	}

	lines := []string{
		m.theme.dialogTitle.Render("Start Game"),
		m.theme.helpText.Render("Select a game and a tone for the story."),
		"",
	}
	for _, row := range rows {
		option, ok := config.Lookup(row.options, row.value)
		label := row.value
		if ok {
			label = option.Label
		}
		value := fmt.Sprintf("‹ %s ›", label)
		if row.field == d.field {
			value = m.theme.fieldPick.Render(value)
		} else {
			value = m.theme.fieldValue.Render(value)
		}
		lines = append(lines, m.theme.fieldLabel.Render(row.label), value, "")
	}
	if provider, ok := config.Lookup(config.Providers, d.selected.Provider); ok && provider.Hint != "" {
		lines = append(lines, m.theme.hint.Render(provider.Hint), "")
	}
	if m.dispatcher.Phase() == session.PhaseStarting {
		lines = append(lines, m.spinner.View()+" starting "+d.selected.GameID+"...")
	} else {
		lines = append(lines, m.statusView())
	}
	lines = append(lines, "", m.help.View(m.keys.dialogHelp()))

	panel := m.theme.dialogFrame.Width(contentWidth).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(
		max(contentWidth+4, m.width-2),
		max(16, m.height-2),
		lipgloss.Center,
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, m.theme.dialogTitle.Render("LLM-IF-Wrapper"), "", panel),
	)
}
