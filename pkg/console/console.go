// ABOUTME: REPL engine composing scrollback, command line and virtual keyboard
// ABOUTME: Owns the output/history rings, evaluates input and drives its surfaces from one loop

package console

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/mauromedda/vrconsole/internal/log"
	"github.com/mauromedda/vrconsole/internal/loop"
	"github.com/mauromedda/vrconsole/internal/store"
	"github.com/mauromedda/vrconsole/pkg/anim"
	"github.com/mauromedda/vrconsole/pkg/cmdline"
	"github.com/mauromedda/vrconsole/pkg/eval"
	"github.com/mauromedda/vrconsole/pkg/input"
	"github.com/mauromedda/vrconsole/pkg/key"
	"github.com/mauromedda/vrconsole/pkg/keyboard"
	"github.com/mauromedda/vrconsole/pkg/scrollback"
	"github.com/mauromedda/vrconsole/pkg/theme"
)

// HistorySlot is the store slot holding the command history.
const HistorySlot = "history"

// Show/hide animation defaults.
const (
	DefaultScale        = 0.2
	DefaultShowDuration = 150 * time.Millisecond
)

// Options configures a Console. Zero fields take defaults.
type Options struct {
	OutputCapacity  int
	HistoryCapacity int

	// Scope holds the host symbols visible to expressions. The console
	// binds itself as "console".
	Scope *eval.Scope
	// Store persists history. Nil keeps history in memory only.
	Store store.Slots
	// Loop drives timers and deferred work. Nil creates a private loop
	// advanced by Frame.
	Loop *loop.Loop

	Scrollback scrollback.Options
	Line       cmdline.Options
	Keyboard   keyboard.Options
	Palette    theme.Palette

	Scale        float64
	ShowDuration time.Duration
}

// Result is the outcome of evaluating one expression. Slot is the output
// slot the value was stored in, or -1.
type Result struct {
	Text  string
	Err   bool
	Value any
	Slot  int
}

// Transform is the console's presentation state, animated on show/hide.
type Transform struct {
	Scale   float64
	Visible bool
}

// SetScalar sets the uniform scale.
func (t *Transform) SetScalar(v float64) { t.Scale = v }

// Console is the in-world REPL. All methods must run on the loop's thread.
type Console struct {
	opts    Options
	palette theme.Palette

	loop     *loop.Loop
	animator *anim.Animator
	scope    *eval.Scope
	store    store.Slots

	output  *OutputRing
	history *HistoryRing
	histPos int // -1 while editing live input

	input  []rune
	cursor int

	buf  *scrollback.Buffer
	line *cmdline.Line
	kb   *keyboard.Keyboard

	transform Transform
	anchor    any
	shown     bool

	timers      []*loop.Timer
	unsubscribe func()
}

// New builds a console, loading persisted history from opts.Store.
func New(opts Options) *Console {
	if opts.Palette == (theme.Palette{}) {
		opts.Palette = theme.Current().Palette
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.ShowDuration <= 0 {
		opts.ShowDuration = DefaultShowDuration
	}
	if opts.Scrollback.Palette == (theme.Palette{}) {
		opts.Scrollback.Palette = opts.Palette
	}
	if opts.Line.Palette == (theme.Palette{}) {
		opts.Line.Palette = opts.Palette
	}
	if opts.Keyboard.Palette == (theme.Palette{}) {
		opts.Keyboard.Palette = opts.Palette
	}

	c := &Console{
		opts:     opts,
		palette:  opts.Palette,
		loop:     opts.Loop,
		animator: anim.New(),
		scope:    opts.Scope,
		store:    opts.Store,
		output:   NewOutputRing(opts.OutputCapacity),
		histPos:  -1,
		buf:      scrollback.New(opts.Scrollback),
		line:     cmdline.New(opts.Line),
		kb:       keyboard.New(opts.Keyboard),
	}
	if c.loop == nil {
		c.loop = loop.New()
	}
	if c.scope == nil {
		c.scope = eval.NewScope()
	}
	if c.store == nil {
		c.store = store.NewMemory()
	}
	c.scope.Define("console", c)
	c.history = NewHistoryRing(opts.HistoryCapacity, c.loadHistory())

	c.timers = append(c.timers,
		c.loop.Every(loop.DefaultRate, c.animator.Tick),
		c.loop.Every(loop.DefaultRate, func(time.Duration) { c.buf.Tick() }),
	)
	c.unsubscribe = c.kb.Subscribe(c.HandleKey)
	return c
}

func (c *Console) loadHistory() []string {
	list, err := store.LoadStrings(c.store, HistorySlot)
	if err != nil {
		log.Warn("console: discarding unreadable history: %v", err)
		return nil
	}
	return list
}

func (c *Console) saveHistory() {
	if err := store.SaveStrings(c.store, HistorySlot, c.history.Entries()); err != nil {
		log.Warn("console: saving history: %v", err)
	}
}

// Close stops the console's timers and detaches it from its keyboard.
func (c *Console) Close() {
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = nil
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Frame advances the console by one host frame.
func (c *Console) Frame(delta time.Duration) {
	c.loop.Advance(delta)
}

// Loop returns the scheduler driving the console.
func (c *Console) Loop() *loop.Loop { return c.loop }

// Scrollback returns the output surface.
func (c *Console) Scrollback() *scrollback.Buffer { return c.buf }

// Line returns the command-line surface.
func (c *Console) Line() *cmdline.Line { return c.line }

// Keyboard returns the virtual keyboard.
func (c *Console) Keyboard() *keyboard.Keyboard { return c.kb }

// Output returns the output ring.
func (c *Console) Output() *OutputRing { return c.output }

// History returns the history ring.
func (c *Console) History() *HistoryRing { return c.history }

// Scope returns the symbol table expressions are evaluated against.
func (c *Console) Scope() *eval.Scope { return c.scope }

// Surfaces returns the console's interactive surfaces for an input.Router.
func (c *Console) Surfaces() []input.Surface {
	return []input.Surface{c.buf, c.kb}
}

// AssignFunctionKey binds F<n> on the virtual keyboard.
func (c *Console) AssignFunctionKey(n int, fn func()) error {
	return c.kb.AssignFunctionKey(n, fn)
}

// Input returns the typed text, without any suggestion.
func (c *Console) Input() string { return string(c.input) }

// Cursor returns the cursor position in runes.
func (c *Console) Cursor() int { return c.cursor }

// SetInput replaces the typed text and puts the cursor at its end.
func (c *Console) SetInput(s string) {
	c.input = []rune(norm.NFC.String(s))
	c.cursor = len(c.input)
	c.refresh()
}

// closers maps an opening character to the one auto-inserted after it.
var closers = map[rune]rune{
	'(':  ')',
	'[':  ']',
	'{':  '}',
	'<':  '>',
	'\'': '\'',
	'"':  '"',
}

// HandleKey applies one logical key to the input.
func (c *Console) HandleKey(k key.Key) {
	switch k.Type {
	case key.KeyUp:
		c.recall(1)
	case key.KeyDown:
		c.recall(-1)
	case key.KeyLeft:
		c.cursor = max(0, c.cursor-1)
	case key.KeyRight:
		if c.cursor < len(c.input) {
			c.cursor++
			break
		}
		if hint := []rune(c.Autocomplete(string(c.input))); len(hint) > len(c.input) {
			c.input = hint
			c.cursor = len(hint)
		}
	case key.KeyBackspace:
		if c.cursor > 0 {
			c.input = append(c.input[:c.cursor-1:c.cursor-1], c.input[c.cursor:]...)
			c.cursor--
		}
	case key.KeyEnter:
		if len(c.input) == 0 {
			return
		}
		c.Submit()
	case key.KeyRune:
		ins := []rune{k.Rune}
		if closer, ok := closers[k.Rune]; ok {
			ins = append(ins, closer)
		}
		rest := append(ins, c.input[c.cursor:]...)
		c.input = append(c.input[:c.cursor:c.cursor], rest...)
		c.cursor++
	default:
		return
	}
	c.refresh()
}

// recall moves through history; dir 1 is older, -1 newer. Moving newer
// past the newest entry returns to an empty input.
func (c *Console) recall(dir int) {
	n := c.history.Len()
	if n == 0 {
		return
	}
	pos := max(-1, min(c.histPos+dir, n-1))
	if pos == c.histPos {
		return
	}
	c.histPos = pos
	entry, _ := c.history.Recent(pos)
	c.input = []rune(norm.NFC.String(entry))
	c.cursor = len(c.input)
}

// refresh shows the autocomplete hint after the typed text and selects it.
func (c *Console) refresh() {
	typed := string(c.input)
	hint := c.Autocomplete(typed)
	c.line.SetValue(hint)
	c.line.SetSelection(len(c.input), len([]rune(hint)))
	c.line.SetCursorIndex(c.cursor)
}

// Submit evaluates the current input, logs the result, records the input
// in history and clears the line.
func (c *Console) Submit() Result {
	expr := string(c.input)
	res := c.Evaluate(expr)

	style := c.palette.Succeeded()
	if res.Err {
		style = c.palette.Failed()
	}
	c.buf.AppendEntry(scrollback.Entry{Prefix: slotPrefix(res.Slot), Text: res.Text, Style: style})

	if c.history.Push(expr) {
		c.saveHistory()
	}
	c.histPos = -1
	c.input = nil
	c.cursor = 0
	c.refresh()
	return res
}

func slotPrefix(slot int) string {
	if slot < 0 {
		return ""
	}
	return fmt.Sprintf("%c%d", eval.MarkerRune, slot)
}

// env builds the evaluation environment, resolving back-references
// against the output ring.
func (c *Console) env() *eval.Env {
	return &eval.Env{
		Scope: c.scope,
		Marker: func(slot int) (any, error) {
			if slot < 0 {
				// Nothing written yet reads as undefined.
				v, _, ok := c.output.Last()
				if !ok {
					return eval.Undefined, nil
				}
				return v, nil
			}
			v, ok := c.output.Get(slot)
			if !ok {
				return nil, fmt.Errorf("%c%d: %w", eval.MarkerRune, slot, eval.ErrMarker)
			}
			return v, nil
		},
	}
}

// Evaluate runs expr. Failures are returned as error results, never
// raised. Serializable values other than undefined take a fresh output slot.
func (c *Console) Evaluate(expr string) Result {
	v, err := eval.Eval(expr, c.env())
	if err != nil {
		var pe *eval.PanicError
		if errors.As(err, &pe) {
			log.Debug("console: recovered panic evaluating %q: %v", expr, pe.Value)
		}
		return Result{Text: err.Error(), Err: true, Slot: -1}
	}

	text, err := eval.Serialize(v)
	if err != nil {
		return Result{Text: err.Error(), Err: true, Value: v, Slot: -1}
	}
	res := Result{Text: text, Value: v, Slot: -1}
	if text != "undefined" {
		res.Slot = c.output.Push(v)
	}
	return res
}

// Log appends text to the scrollback with the plain log style.
func (c *Console) Log(text string) {
	c.buf.Append(text, c.palette.Log())
}

// Clear empties the scrollback.
func (c *Console) Clear() { c.buf.Clear() }
