// ABOUTME: Help panel rendered from markdown with glamour
// ABOUTME: Caches rendered output per terminal width

package main

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# vrconsole

Type an expression and press **Enter**. Results are stored in numbered
slots: ` + "`§`" + ` is the newest, ` + "`§3`" + ` reads slot 3.

| Key | Action |
| --- | --- |
| Up / Down | walk the command history |
| Right / Tab | move right, or accept the suggestion at the end |
| F1 | log demo output through every host channel |
| F2 | copy the newest result to the clipboard |
| F3 | clear the scrollback |
| ctrl+t | show or hide the console |
| ctrl+l | clear the scrollback |
| mouse wheel | scroll the output |
| Esc / ctrl+c | quit |

Shaking the pointer side to side also toggles the console.

Try ` + "`scene.Find('cube').MoveTo(1, 2, 3)`" + `, ` + "`console.log(§)`" + ` or
` + "`settings.Gesture`" + `.

Press any key to close this panel.
`

type helpPanel struct {
	cache map[int]string
}

func newHelpPanel() *helpPanel {
	return &helpPanel{cache: make(map[int]string)}
}

// Render returns the help text wrapped to width.
func (p *helpPanel) Render(width int) string {
	if width <= 0 {
		width = 80
	}
	if cached, ok := p.cache[width]; ok {
		return cached
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	rendered, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	rendered = strings.TrimRight(rendered, "\n ")
	p.cache[width] = rendered
	return rendered
}
