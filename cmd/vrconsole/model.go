// ABOUTME: BubbleTea model hosting the console in a terminal: frame ticks, keys, mouse and rendering
// ABOUTME: Terminal keys map onto console keys; F-keys go through the virtual keyboard's bindings

package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/vrconsole/pkg/console"
	"github.com/mauromedda/vrconsole/pkg/key"
	"github.com/mauromedda/vrconsole/pkg/keyboard"
	"github.com/mauromedda/vrconsole/pkg/theme"
)

// wheelStep is the scroll delta of one mouse wheel notch.
const wheelStep = 0.2

// chromeLines is the number of terminal lines used outside the scrollback.
const chromeLines = 3

type tickMsg time.Time

type model struct {
	h      *host
	rate   time.Duration
	last   time.Time
	width  int
	height int
	help   bool
	panel  *helpPanel
}

func newModel(h *host, width, height int) model {
	fps := max(1, h.settings.FrameRate)
	return model{
		h:      h,
		rate:   time.Second / time.Duration(fps),
		width:  width,
		height: height,
		panel:  newHelpPanel(),
	}
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.rate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			m.h.console.Frame(now.Sub(m.last))
		}
		m.last = now
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.h.console.Scrollback().Scroll(-wheelStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.h.console.Scrollback().Scroll(wheelStep)
	case msg.Action == tea.MouseActionMotion:
		m.h.moveController(msg.X, msg.Y)
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help {
		// Any key closes the help panel.
		m.help = false
		return m, nil
	}

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyCtrlG:
		m.help = true
		return m, nil
	case tea.KeyCtrlT:
		m.h.toggle()
		return m, nil
	case tea.KeyCtrlL:
		m.h.console.Clear()
		return m, nil
	}

	if n, ok := functionKey(msg.Type); ok {
		m.h.pressFunction(n)
		return m, nil
	}
	for _, k := range translateKey(msg) {
		m.h.console.HandleKey(k)
	}
	return m, nil
}

var functionKeys = map[tea.KeyType]int{
	tea.KeyF1: 1, tea.KeyF2: 2, tea.KeyF3: 3, tea.KeyF4: 4, tea.KeyF5: 5, tea.KeyF6: 6,
	tea.KeyF7: 7, tea.KeyF8: 8, tea.KeyF9: 9, tea.KeyF10: 10, tea.KeyF11: 11,
}

// functionKey maps F1..F11 to their index.
func functionKey(t tea.KeyType) (int, bool) {
	n, ok := functionKeys[t]
	return n, ok
}

// translateKey converts a terminal key into console keys. Pasted text
// yields one key per rune.
func translateKey(msg tea.KeyMsg) []key.Key {
	switch msg.Type {
	case tea.KeyUp:
		return []key.Key{key.Named(key.KeyUp)}
	case tea.KeyDown:
		return []key.Key{key.Named(key.KeyDown)}
	case tea.KeyLeft:
		return []key.Key{key.Named(key.KeyLeft)}
	case tea.KeyRight, tea.KeyTab:
		return []key.Key{key.Named(key.KeyRight)}
	case tea.KeyBackspace:
		return []key.Key{key.Named(key.KeyBackspace)}
	case tea.KeyEnter:
		return []key.Key{key.Named(key.KeyEnter)}
	case tea.KeySpace:
		return []key.Key{key.Rune(' ')}
	case tea.KeyRunes:
		out := make([]key.Key, len(msg.Runes))
		for i, r := range msg.Runes {
			out[i] = key.Rune(r)
		}
		return out
	}
	return nil
}

func (m model) View() string {
	if m.help {
		return m.panel.Render(m.width)
	}

	c := m.h.console
	pal := theme.Current().Palette
	dim := theme.Style{Color: pal.Hint}.Lipgloss()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("vrconsole"))
	b.WriteString("  ")
	b.WriteString(dim.Render(m.status()))
	b.WriteByte('\n')

	if !c.Visible() {
		b.WriteString(dim.Render("console hidden: shake the pointer or press ctrl+t"))
		return b.String()
	}

	legend := c.Keyboard().Legend()
	avail := m.height - chromeLines - len(legend)
	if avail < 1 {
		avail = max(1, m.height-chromeLines)
		legend = nil
	}
	rows := c.Scrollback().VisibleRows()
	if len(rows) > avail {
		rows = rows[len(rows)-avail:]
	}
	for _, r := range rows {
		b.WriteString(r.Style.Lipgloss().Render(r.Text))
		b.WriteByte('\n')
	}

	b.WriteString(m.inputLine(pal))
	b.WriteByte('\n')
	for _, l := range legend {
		b.WriteString(dim.Render(l))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m model) status() string {
	c := m.h.console
	state := "shown"
	if !c.Shown() {
		state = "hidden"
	}
	s := fmt.Sprintf("%s %.0f%%  slots %d/%d  history %d  ctrl+g help",
		state, 100*c.Scale()/console.DefaultScale, c.Output().Len(), c.Output().Cap(), c.History().Len())
	if kbState := shiftState(c.Keyboard()); kbState != "" {
		s += "  " + kbState
	}
	if m.h.status != "" {
		s += "  " + m.h.status
	}
	return s
}

func shiftState(kb *keyboard.Keyboard) string {
	switch {
	case kb.Caps():
		return "CAPS"
	case kb.Shift():
		return "SHIFT"
	}
	return ""
}

// inputLine draws the typed text, a block cursor and the dimmed hint.
func (m model) inputLine(pal theme.Palette) string {
	c := m.h.console
	line := c.Line()
	prompt := theme.Style{Color: pal.Success}.Lipgloss().Render("› ")

	typed := []rune(c.Input())
	if len(typed) == 0 && line.Hint() == "" {
		return prompt + theme.Style{Color: pal.Placeholder}.Lipgloss().Render(line.Placeholder())
	}

	input := theme.Style{Color: pal.Input}.Lipgloss()
	cursor := lipgloss.NewStyle().Reverse(true)
	hint := theme.Style{Color: pal.Hint}.Lipgloss()

	cur := min(c.Cursor(), len(typed))
	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString(input.Render(string(typed[:cur])))
	if cur < len(typed) {
		b.WriteString(cursor.Render(string(typed[cur])))
		b.WriteString(input.Render(string(typed[cur+1:])))
		b.WriteString(hint.Render(line.Hint()))
		return b.String()
	}
	h := []rune(line.Hint())
	if len(h) == 0 {
		b.WriteString(cursor.Render(" "))
		return b.String()
	}
	b.WriteString(cursor.Render(string(h[0])))
	b.WriteString(hint.Render(string(h[1:])))
	return b.String()
}
