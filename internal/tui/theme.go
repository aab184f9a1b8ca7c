package tui

import "github.com/charmbracelet/lipgloss"

type uiTheme struct {
	root        lipgloss.Style
	header      lipgloss.Style
	headerKey   lipgloss.Style
	headerValue lipgloss.Style
	pane        lipgloss.Style
	debugPane   lipgloss.Style
	paneTitle   lipgloss.Style
	paneHint    lipgloss.Style
	echo        lipgloss.Style
	prose       lipgloss.Style
	debugText   lipgloss.Style
	inputPanel  lipgloss.Style
	footer      lipgloss.Style
	status      lipgloss.Style
	errorStatus lipgloss.Style
	helpText    lipgloss.Style
	dialogFrame lipgloss.Style
	dialogTitle lipgloss.Style
	fieldLabel  lipgloss.Style
	fieldValue  lipgloss.Style
	fieldPick   lipgloss.Style
	hint        lipgloss.Style
}

func newTheme() uiTheme {
	pink := lipgloss.Color("#ff71ce")
	blue := lipgloss.Color("#01cdfe")
	mint := lipgloss.Color("#05ffa1")
	gold := lipgloss.Color("#ffd166")
	bg := lipgloss.Color("#120924")
	panelBg := lipgloss.Color("#1b0f35")
	text := lipgloss.Color("#f3f3ff")
	muted := lipgloss.Color("#9ca3d8")

	return uiTheme{
		root: lipgloss.NewStyle().
			Background(bg).
			Foreground(text).
			Padding(0, 1),
		header: lipgloss.NewStyle().
			Background(panelBg).
			Foreground(text).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(0, 1),
		headerKey:   lipgloss.NewStyle().Foreground(muted),
		headerValue: lipgloss.NewStyle().Foreground(mint).Bold(true),
		pane: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(0, 1),
		debugPane: lipgloss.NewStyle().
			Background(lipgloss.Color("#0d0620")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		paneTitle:  lipgloss.NewStyle().Foreground(mint).Bold(true),
		paneHint:   lipgloss.NewStyle().Foreground(muted).Italic(true),
		echo:       lipgloss.NewStyle().Foreground(pink).Bold(true),
		prose:      lipgloss.NewStyle().Foreground(text),
		debugText:  lipgloss.NewStyle().Foreground(muted),
		inputPanel: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mint).
			Padding(0, 1),
		footer: lipgloss.NewStyle().
			Background(panelBg).
			Foreground(muted).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(pink).
			Padding(0, 1),
		status:      lipgloss.NewStyle().Foreground(blue).Bold(true),
		errorStatus: lipgloss.NewStyle().Foreground(pink).Bold(true),
		helpText:    lipgloss.NewStyle().Foreground(muted),
		dialogFrame: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(pink).
			Padding(1, 2),
		dialogTitle: lipgloss.NewStyle().Foreground(blue).Bold(true),
		fieldLabel:  lipgloss.NewStyle().Foreground(blue).Bold(true),
		fieldValue:  lipgloss.NewStyle().Foreground(text),
		fieldPick: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22062f")).
			Background(pink).
			Bold(true).
			Padding(0, 1),
		hint: lipgloss.NewStyle().Foreground(gold),
	}
}
