package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/Manto/llm-if-wrapper/internal/session"
)

var channelTitles = map[session.Channel]struct {
	title string
	hint  string
}{
	session.ChannelOriginal:  {"Original", "raw interpreter output"},
	session.ChannelRewritten: {"Rewritten", "LLM rewrite in the chosen tone"},
	session.ChannelDebug:     {"Debug", "latest service log"},
}

// renderChannel draws one channel's history. Prose channels are word wrapped
// with echoed commands set off; debug is the raw log, hard wrapped.
func renderChannel(theme uiTheme, channel session.Channel, turns []session.Turn, width int) string {
	width = max(10, width)
	if len(turns) == 0 {
		return theme.helpText.Render("(nothing yet)")
	}
	switch channel {
	case session.ChannelDebug:
		log := strings.ReplaceAll(turns[len(turns)-1].Text, "\r\n", "\n")
		return theme.debugText.Render(wrap.String(log, width))
	default:
		blocks := make([]string, 0, len(turns))
		for _, turn := range turns {
			text := strings.TrimSpace(strings.ReplaceAll(turn.Text, "\r\n", "\n"))
			switch turn.Role {
			case session.RoleEcho:
				blocks = append(blocks, theme.echo.Render(wordwrap.String("> "+text, width)))
			default:
				blocks = append(blocks, theme.prose.Render(wordwrap.String(text, width)))
			}
		}
		return strings.Join(blocks, "\n\n")
	}
}

func (m *Model) renderHeader() string {
	s := m.dispatcher.Session()
	field := func(key, value string) string {
		return m.theme.headerKey.Render(key+": ") + m.theme.headerValue.Render(orDefault(value, "-"))
	}
	line := strings.Join([]string{
		field("Game", s.GameID),
		field("Writing Style", s.Tone),
		field("LLM", s.Provider),
		field("Session", s.ID),
	}, "  ")
	return m.theme.header.Width(max(20, m.width-4)).Render(line)
}

func (m *Model) renderContent() string {
	shown := m.visibility.Shown()
	height := m.paneHeight()
	if len(shown) == 0 {
		return m.theme.pane.
			Width(max(20, m.width-6)).
			Height(height).
			Render(m.theme.helpText.Render("All channels hidden. Press ctrl+o, ctrl+t or ctrl+g to show one."))
	}
	panes := make([]string, 0, len(shown))
	paneWidth := m.paneWidth(len(shown))
	for _, channel := range shown {
		style := m.theme.pane
		if channel == session.ChannelDebug {
			style = m.theme.debugPane
		}
		body := m.viewports[channel].View()
		if len(shown) > 1 {
			meta := channelTitles[channel]
			body = m.theme.paneTitle.Render(meta.title) + " " + m.theme.paneHint.Render(meta.hint) + "\n" + body
		}
		panes = append(panes, style.Width(paneWidth).Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panes...)
}

func (m *Model) renderInput() string {
	contentWidth := max(40, m.width-4)
	inputView := m.input.View()
	if m.dispatcher.Phase() == session.PhaseBusy {
		inputView = m.spinner.View() + " processing... " + inputView
	}
	return m.theme.inputPanel.Width(contentWidth).Render(inputView)
}

func (m *Model) renderFooter() string {
	contentWidth := max(40, m.width-4)
	return m.theme.footer.Width(contentWidth).Render(m.statusView() + "\n" + m.help.View(m.keys.activeHelp()))
}

func (m *Model) statusView() string {
	style := m.theme.status
	if m.statusErr {
		style = m.theme.errorStatus
	}
	return style.Render(compactSingleLine(m.statusLine, 180))
}

// renderPanes sizes every channel viewport and refreshes its content. Hidden
// channels are refreshed too so showing them again needs no catch-up.
func (m *Model) renderPanes() {
	shown := m.visibility.Shown()
	paneWidth := m.paneWidth(max(1, len(shown)))
	height := m.paneHeight()
	titled := len(shown) > 1
	for _, channel := range session.Channels() {
		vp := m.viewports[channel]
		atBottom := vp.AtBottom()
		prevOffset := vp.YOffset
		vp.Width = max(10, paneWidth-2)
		vp.Height = max(3, height)
		if titled {
			vp.Height = max(3, height-1)
		}
		vp.SetContent(renderChannel(m.theme, channel, m.dispatcher.Streams().Snapshot(channel), vp.Width))
		if atBottom {
			vp.GotoBottom()
		} else {
			vp.SetYOffset(prevOffset)
		}
	}
}

func (m *Model) paneWidth(count int) int {
	contentWidth := max(40, m.width-4)
	// each pane carries a border on both sides
	return max(12, contentWidth/count-2)
}

func (m *Model) paneHeight() int {
	return max(5, m.height-12)
}

func (m *Model) scroll(lines int) {
	for _, channel := range m.visibility.Shown() {
		vp := m.viewports[channel]
		if lines < 0 {
			vp.LineUp(-lines)
		} else {
			vp.LineDown(lines)
		}
	}
}
