// ABOUTME: Built-in console themes: default (light panel) and dark
// ABOUTME: Provides Builtin(name) lookup and BuiltinNames() enumeration

package theme

import "sort"

var builtins = map[string]*Theme{
	"default": {Name: "default", Palette: DefaultPalette()},
	"dark": {
		Name: "dark",
		Palette: Palette{
			Text:       "#e6e6e6",
			Background: "#020207",
			Separator:  "#333340",
			Success:    "#8fd18f",
			Warn:       "#e0a93a",
			Error:      "#ff5f5f",

			Input:       "#ffffff",
			Hint:        "#7a7a8c",
			Placeholder: "#5a5a6a",
			Cursor:      "#ffffff",
			InputBg:     "#14141c",

			KeyFill:  "#2a2a36",
			KeyText:  "#f0f0f0",
			KeyHover: "#44445a",
			KeyShift: "#3c9a3c",
			KeyCaps:  "#b8862e",
		},
	},
}

// Builtin returns the named built-in theme, or nil.
func Builtin(name string) *Theme {
	t, ok := builtins[name]
	if !ok {
		return nil
	}
	cp := *t
	return &cp
}

// BuiltinNames lists built-in theme names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
