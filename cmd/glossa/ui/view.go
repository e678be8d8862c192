package ui

import (
	"fmt"
	"strings"

	"glossa/internal/app"
)

// View renders the current page.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.ctrl.State() {
	case app.StateLibrary:
		return m.viewLibrary()
	case app.StateEditor:
		return m.viewEditor()
	default:
		return m.viewHome()
	}
}

func (m Model) viewHome() string {
	var b strings.Builder
	b.WriteString(Logo(m.styles))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("a constructed language builder"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Body.Render("Type a name to start a new language."))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("/library opens saved languages, /open <link> opens a shared one."))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderNotice())
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("enter: create  •  ctrl+c: quit"))
	return b.String()
}

func (m Model) viewLibrary() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Saved languages"))
	b.WriteString("\n\n")
	if len(m.library) == 0 {
		b.WriteString(m.styles.Muted.Render("Nothing saved yet."))
		b.WriteString("\n")
	}
	for i, c := range m.library {
		line := fmt.Sprintf("%-20s %3d phonemes %4d words", c.Name, len(c.Phonemes), len(c.Vocabulary))
		if i == m.libIndex {
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString(m.styles.Body.Render(" " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderNotice())
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("↑/↓: select  •  enter: open  •  s: share  •  d: delete  •  esc: home"))
	return b.String()
}

func (m Model) viewEditor() string {
	cur := m.ctrl.Current()
	if cur == nil {
		return m.viewHome()
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(cur.Name))
	if cur.Vibe != "" {
		b.WriteString("  ")
		b.WriteString(m.styles.Subtitle.Render(cur.Vibe))
	}
	b.WriteString("\n")

	if len(cur.Phonemes) > 0 {
		b.WriteString(m.styles.IPA.Render("phonemes: " + strings.Join(cur.Phonemes, " ")))
		b.WriteString("\n")
	}
	if cur.Description != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Body.Render(truncate(cur.Description, 400)))
		b.WriteString("\n")
	}
	if len(cur.Vocabulary) > 0 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d words  •  %s order", len(cur.Vocabulary), orderOr(cur.Grammar.WordOrder))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, line := range m.log {
		b.WriteString(m.styleFor(line.style).Render(line.text))
		b.WriteString("\n")
	}

	b.WriteString(m.renderBusy())
	b.WriteString(m.renderNotice())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("/help for commands  •  esc: home  •  ctrl+c: quit"))
	return b.String()
}

func (m Model) styleFor(s lineStyle) interface{ Render(...string) string } {
	switch s {
	case linePrompt:
		return m.styles.Prompt
	case lineAssistant:
		return m.styles.Assistant
	case lineSuccess:
		return m.styles.Success
	case lineError:
		return m.styles.Error
	case lineMuted:
		return m.styles.Muted
	default:
		return m.styles.Body
	}
}

var busyLabels = []struct {
	op    app.Operation
	label string
}{
	{app.OpGenerate, "generating the language core"},
	{app.OpExtend, "coining new words"},
	{app.OpTranslate, "translating"},
	{app.OpAsk, "thinking"},
	{app.OpSuggest, "choosing phonemes"},
	{app.OpExpand, "expanding the vibe"},
}

func (m Model) renderBusy() string {
	var b strings.Builder
	for _, bl := range busyLabels {
		if m.ctrl.Busy(bl.op) {
			b.WriteString(m.spin.View())
			b.WriteString(m.styles.Muted.Render(bl.label + "..."))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderNotice() string {
	n := m.ctrl.Notice()
	if n == nil {
		return ""
	}
	if n.IsError {
		return m.styles.Error.Render(n.Text) + "\n"
	}
	return m.styles.Success.Render(n.Text) + "\n"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func orderOr(order string) string {
	if order == "" {
		return "unset"
	}
	return order
}
