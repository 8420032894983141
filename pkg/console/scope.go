// ABOUTME: The console as seen from expressions: a small, explicit member table
// ABOUTME: Only these members are reachable through "console"; other Go methods stay hidden

package console

import "github.com/mauromedda/vrconsole/pkg/eval"

var consoleMembers = []string{"clear", "error", "history", "log", "output", "visible", "warn"}

// Members lists the names expressions may read on the console.
func (c *Console) Members() []string {
	return append([]string(nil), consoleMembers...)
}

// Member resolves one console member for the evaluator.
func (c *Console) Member(name string) (any, bool) {
	switch name {
	case "output":
		return c.output, true
	case "history":
		return c.history.Entries(), true
	case "visible":
		return c.transform.Visible, true
	case "clear":
		return eval.Func(func(...any) (any, error) {
			c.Clear()
			return eval.Undefined, nil
		}), true
	case "log":
		return c.channelFunc(LevelLog), true
	case "warn":
		return c.channelFunc(LevelWarn), true
	case "error":
		return c.channelFunc(LevelError), true
	}
	return nil, false
}

// channelFunc mirrors a call made from an expression, like a host log call.
func (c *Console) channelFunc(level Level) eval.Func {
	return func(args ...any) (any, error) {
		args = append([]any(nil), args...)
		c.loop.Defer(func() { c.record(level, args) })
		return eval.Undefined, nil
	}
}
