package glctx

import (
	"fmt"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/bbredesen/obj-viewer/transform"
)

const resetBinding = "reset"

type binding struct {
	action transform.Action
	reset  bool
}

type keyMap map[glfw.Key]binding

// DefaultBindings are the viewer's stock keys. R resets the transform.
var DefaultBindings = map[string]string{
	"X": "rotate-x",
	"Y": "rotate-y",
	"Z": "rotate-z",
	"A": "move-left",
	"D": "move-right",
	"I": "move-up",
	"J": "move-down",
	"W": "move-front",
	"S": "move-back",
	"1": "scale-down",
	"2": "scale-up",
	"R": resetBinding,
}

var namedKeys = map[string]glfw.Key{
	"SPACE":    glfw.KeySpace,
	"LEFT":     glfw.KeyLeft,
	"RIGHT":    glfw.KeyRight,
	"UP":       glfw.KeyUp,
	"DOWN":     glfw.KeyDown,
	"PAGEUP":   glfw.KeyPageUp,
	"PAGEDOWN": glfw.KeyPageDown,
	"MINUS":    glfw.KeyMinus,
	"EQUAL":    glfw.KeyEqual,
}

func parseKey(name string) (glfw.Key, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if len(name) == 1 {
		switch c := name[0]; {
		case c >= 'A' && c <= 'Z':
			return glfw.KeyA + glfw.Key(c-'A'), nil
		case c >= '0' && c <= '9':
			return glfw.Key0 + glfw.Key(c-'0'), nil
		}
	}
	if k, ok := namedKeys[name]; ok {
		return k, nil
	}
	return glfw.KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// newKeyMap starts from DefaultBindings and applies overrides on top. Escape
// always closes the window and cannot be rebound.
func newKeyMap(overrides map[string]string) (keyMap, error) {
	km := keyMap{}
	for _, src := range []map[string]string{DefaultBindings, overrides} {
		for name, act := range src {
			key, err := parseKey(name)
			if err != nil {
				return nil, err
			}
			if act == resetBinding {
				km[key] = binding{reset: true}
				continue
			}
			a, ok := transform.ParseAction(act)
			if !ok {
				return nil, fmt.Errorf("key %s: unknown action %q", name, act)
			}
			km[key] = binding{action: a}
		}
	}
	return km, nil
}

// keyCallback runs inside glfw.PollEvents on the main thread. Press and
// repeat both count as held.
func (ctx *Context) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
		return
	}

	b, ok := ctx.keys[key]
	if !ok {
		return
	}
	if b.reset {
		if action == glfw.Press && ctx.OnReset != nil {
			ctx.OnReset()
		}
		return
	}
	ctx.Input.Set(b.action, action != glfw.Release)
}
