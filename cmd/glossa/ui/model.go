// Package ui: model.go holds the bubbletea model, messages, and Init.
// Update lives in update.go and rendering in view.go.
package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"glossa/internal/app"
	"glossa/internal/conlang"
)

// maxLogLines bounds the editor activity log.
const maxLogLines = 200

// logLine is one rendered line of the editor activity log.
type logLine struct {
	text  string
	style lineStyle
}

type lineStyle int

const (
	lineBody lineStyle = iota
	linePrompt
	lineAssistant
	lineSuccess
	lineError
	lineMuted
)

// opDoneMsg reports a finished controller operation.
type opDoneMsg struct {
	op       app.Operation
	err      error
	lines    []logLine
	markdown string
}

// savedMsg reports a finished save or delete.
type savedMsg struct{ err error }

// libraryMsg carries the refreshed saved-languages list.
type libraryMsg struct {
	items []*conlang.Conlang
	err   error
}

// Model is the top-level bubbletea model.
type Model struct {
	ctrl     *app.Controller
	styles   Styles
	shareURL string

	input    textinput.Model
	spin     spinner.Model
	renderer *glamour.TermRenderer

	width  int
	height int

	log      []logLine
	library  []*conlang.Conlang
	libIndex int

	quitting bool
}

// New creates the interactive model around a controller.
func New(ctrl *app.Controller, shareBaseURL string) Model {
	styles := DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "name your language"
	ti.Prompt = "> "
	ti.PromptStyle = styles.Prompt
	ti.CharLimit = 512
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		renderer = nil
	}

	return Model{
		ctrl:     ctrl,
		styles:   styles,
		shareURL: shareBaseURL,
		input:    ti,
		spin:     sp,
		renderer: renderer,
	}
}

// Init starts the spinner tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

// appendLog adds lines to the activity log, trimming the front.
func (m *Model) appendLog(lines ...logLine) {
	m.log = append(m.log, lines...)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

// renderMarkdown renders assistant markdown, falling back to plain text.
func (m *Model) renderMarkdown(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// anyBusy reports whether any model-backed operation is in flight.
func (m *Model) anyBusy() bool {
	for _, op := range []app.Operation{
		app.OpGenerate, app.OpExtend, app.OpTranslate,
		app.OpAsk, app.OpSuggest, app.OpExpand,
	} {
		if m.ctrl.Busy(op) {
			return true
		}
	}
	return false
}
