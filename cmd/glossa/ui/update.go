package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"glossa/internal/app"
	"glossa/internal/phoneme"
)

// Update is the bubbletea message loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		m.spin, spCmd = m.spin.Update(msg)
		return m, spCmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEsc:
			if m.ctrl.State() != app.StateHome {
				m.ctrl.GoHome()
				m.log = nil
				m.input.SetValue("")
				m.input.Placeholder = "name your language"
				m.input.Focus()
			}
			return m, nil
		}
		switch m.ctrl.State() {
		case app.StateHome:
			return m.updateHome(msg)
		case app.StateLibrary:
			return m.updateLibrary(msg)
		default:
			return m.updateEditor(msg)
		}

	case libraryMsg:
		if msg.err != nil {
			m.appendLog(logLine{fmt.Sprintf("Could not load saved languages: %v", msg.err), lineError})
			return m, nil
		}
		m.library = msg.items
		if m.libIndex >= len(m.library) {
			m.libIndex = 0
		}
		return m, nil

	case savedMsg:
		// The controller already posted a notice either way.
		return m, nil

	case opDoneMsg:
		if msg.markdown != "" {
			m.appendLog(logLine{m.renderMarkdown(msg.markdown), lineAssistant})
		}
		m.appendLog(msg.lines...)
		return m, nil
	}

	m.input, tiCmd = m.input.Update(msg)
	return m, tiCmd
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		text := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		switch {
		case text == "":
			return m, nil
		case text == "/library":
			m.ctrl.GoLibrary()
			return m, m.refreshLibrary()
		case strings.HasPrefix(text, "/open "):
			token := strings.TrimSpace(strings.TrimPrefix(text, "/open "))
			if err := m.ctrl.OpenShared(token); err == nil {
				m.enterEditor()
			}
			return m, nil
		default:
			m.ctrl.StartNew(text)
			m.enterEditor()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) enterEditor() {
	m.log = nil
	m.input.Placeholder = "/help for commands, or just ask a question"
	m.input.Focus()
}

func (m Model) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.libIndex > 0 {
			m.libIndex--
		}
	case "down", "j":
		if m.libIndex < len(m.library)-1 {
			m.libIndex++
		}
	case "enter":
		if m.libIndex < len(m.library) {
			if err := m.ctrl.OpenSaved(m.library[m.libIndex].ID); err == nil {
				m.enterEditor()
			}
		}
	case "d":
		if m.libIndex < len(m.library) {
			id := m.library[m.libIndex].ID
			ctrl := m.ctrl
			return m, tea.Sequence(
				func() tea.Msg { return savedMsg{err: ctrl.DeleteSaved(id)} },
				m.refreshLibrary(),
			)
		}
	case "s":
		if m.libIndex < len(m.library) {
			if err := m.ctrl.OpenSaved(m.library[m.libIndex].ID); err == nil {
				m.enterEditor()
				if link, err := m.ctrl.ShareCurrent(m.shareURL); err == nil {
					m.appendLog(
						logLine{"Share link:", lineMuted},
						logLine{link, lineBody},
					)
				} else {
					m.appendLog(logLine{err.Error(), lineError})
				}
			}
		}
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		text := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		if text == "" {
			return m, nil
		}
		return m.dispatch(text)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// dispatch routes one editor input line.
func (m Model) dispatch(text string) (tea.Model, tea.Cmd) {
	cmd, rest, _ := strings.Cut(text, " ")
	rest = strings.TrimSpace(rest)
	ctrl := m.ctrl

	switch cmd {
	case "/help":
		m.appendLog(helpLines()...)
		return m, nil

	case "/home":
		m.ctrl.GoHome()
		m.log = nil
		m.input.Placeholder = "name your language"
		return m, nil

	case "/library":
		m.ctrl.GoLibrary()
		return m, m.refreshLibrary()

	case "/name":
		m.ctrl.SetName(rest)
		return m, nil

	case "/vibe":
		m.ctrl.SetVibe(rest)
		m.appendLog(logLine{"Vibe updated.", lineMuted})
		return m, nil

	case "/phonemes":
		for _, sym := range strings.Fields(rest) {
			m.ctrl.TogglePhoneme(sym)
		}
		return m, nil

	case "/catalog":
		m.appendLog(catalogLines(rest)...)
		return m, nil

	case "/generate":
		return m, func() tea.Msg {
			err := ctrl.Generate(context.Background())
			return opDoneMsg{op: app.OpGenerate, err: err}
		}

	case "/extend":
		theme := rest
		return m, func() tea.Msg {
			err := ctrl.Extend(context.Background(), theme, 10)
			return opDoneMsg{op: app.OpExtend, err: err}
		}

	case "/translate":
		if rest == "" {
			m.appendLog(logLine{"Usage: /translate <text>", lineMuted})
			return m, nil
		}
		return m, func() tea.Msg {
			err := ctrl.Translate(context.Background(), rest)
			var lines []logLine
			if err == nil {
				if tr := ctrl.LastTranslation(); tr != nil {
					lines = append(lines, logLine{tr.Translation, lineSuccess})
					if tr.Pronunciation != "" {
						lines = append(lines, logLine{"[" + tr.Pronunciation + "]", lineMuted})
					}
					for _, b := range tr.Breakdown {
						lines = append(lines, logLine{fmt.Sprintf("  %-16s %s", b.Word, b.Meaning), lineBody})
					}
				}
			}
			return opDoneMsg{op: app.OpTranslate, err: err, lines: lines}
		}

	case "/suggest":
		return m, func() tea.Msg {
			err := ctrl.Suggest(context.Background())
			return opDoneMsg{op: app.OpSuggest, err: err}
		}

	case "/expand":
		return m, func() tea.Msg {
			err := ctrl.Expand(context.Background())
			return opDoneMsg{op: app.OpExpand, err: err}
		}

	case "/save":
		return m, func() tea.Msg { return savedMsg{err: ctrl.Save()} }

	case "/share":
		link, err := m.ctrl.ShareCurrent(m.shareURL)
		if err != nil {
			m.appendLog(logLine{err.Error(), lineError})
			return m, nil
		}
		m.appendLog(
			logLine{"Share link:", lineMuted},
			logLine{link, lineBody},
		)
		return m, nil

	default:
		// Anything else is a question for the assistant.
		query := text
		if cmd == "/ask" {
			query = rest
		}
		m.appendLog(logLine{"you: " + query, linePrompt})
		return m, func() tea.Msg {
			answer, err := ctrl.Ask(context.Background(), query)
			return opDoneMsg{op: app.OpAsk, err: err, markdown: answer}
		}
	}
}

func (m Model) refreshLibrary() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		items, err := ctrl.ListSaved()
		return libraryMsg{items: items, err: err}
	}
}

func helpLines() []logLine {
	return []logLine{
		{"/generate              build description, grammar, and vocabulary", lineMuted},
		{"/extend [theme]        coin ten more words", lineMuted},
		{"/translate <text>      render text in your language", lineMuted},
		{"/ask <question>        ask the language assistant (or just type)", lineMuted},
		{"/suggest               suggest phonemes for the vibe", lineMuted},
		{"/expand                expand the vibe into a fuller description", lineMuted},
		{"/vibe <text>           set the aesthetic description", lineMuted},
		{"/name <text>           rename the language", lineMuted},
		{"/phonemes <p t k ...>  toggle phonemes in the selection", lineMuted},
		{"/catalog [category]    browse the IPA catalog", lineMuted},
		{"/save  /share  /library  /home", lineMuted},
	}
}

// catalogLines renders the IPA catalog, optionally one category.
func catalogLines(category string) []logLine {
	cats := phoneme.Categories()
	if category != "" {
		entries := phoneme.ByCategory(phoneme.Category(category))
		if len(entries) == 0 {
			return []logLine{{fmt.Sprintf("Unknown category %q.", category), lineError}}
		}
		cats = []phoneme.Category{phoneme.Category(category)}
	}
	var lines []logLine
	for _, cat := range cats {
		lines = append(lines, logLine{string(cat), linePrompt})
		for _, p := range phoneme.ByCategory(cat) {
			lines = append(lines, logLine{fmt.Sprintf("  %-4s %s", p.Symbol, p.Description), lineMuted})
		}
	}
	return lines
}
