package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rless/internal/scroll"
)

// Keymap resolves key chords to intents. Printable keys are named by their
// literal rune ("q", "G", " "); special keys use tcell's event names ("Up",
// "PgDn", "Ctrl+C").
type Keymap struct {
	bindings map[string]scroll.Intent
}

// Binding is one chord/intent pair, ordered for presentation.
type Binding struct {
	Chord  string
	Intent scroll.Intent
}

// actions are the names a configuration file may bind a chord to.
var actions = map[string]scroll.Intent{
	"up":      scroll.Up,
	"down":    scroll.Down,
	"left":    scroll.Left,
	"right":   scroll.Right,
	"top":     scroll.Top,
	"bottom":  scroll.Bottom,
	"reload":  scroll.Reload,
	"help":    scroll.ToggleHelp,
	"suspend": scroll.Suspend,
	"quit":    scroll.Exit,
}

// Default returns the stock pager bindings.
func Default() *Keymap {
	return &Keymap{bindings: map[string]scroll.Intent{
		"q":      scroll.Exit,
		"Q":      scroll.Exit,
		"Ctrl+C": scroll.Exit,
		"Up":     scroll.Up,
		"k":      scroll.Up,
		"PgUp":   scroll.Up,
		"b":      scroll.Up,
		"Down":   scroll.Down,
		"j":      scroll.Down,
		"Enter":  scroll.Down,
		" ":      scroll.Down,
		"PgDn":   scroll.Down,
		"f":      scroll.Down,
		"Left":   scroll.Left,
		"Right":  scroll.Right,
		"Home":   scroll.Top,
		"g":      scroll.Top,
		"End":    scroll.Bottom,
		"G":      scroll.Bottom,
		"r":      scroll.Reload,
		"Ctrl+L": scroll.Reload,
		"?":      scroll.ToggleHelp,
		"Ctrl+Z": scroll.Suspend,
	}}
}

// ApplyOverrides rebinds chords from the configuration. Unknown action names
// are rejected so a typo is caught before the screen initializes.
func (k *Keymap) ApplyOverrides(overrides map[string]string) error {
	for chord, action := range overrides {
		intent, ok := actions[strings.ToLower(action)]
		if !ok {
			return fmt.Errorf("unknown action %q bound to key %q", action, chord)
		}
		k.bindings[chord] = intent
	}
	return nil
}

// Translate maps a key event to its intent. Unbound keys scroll down one
// page, keeping the historical "any key advances" pager behavior.
func (k *Keymap) Translate(ev *tcell.EventKey) scroll.Intent {
	if intent, ok := k.bindings[chord(ev)]; ok {
		return intent
	}
	return scroll.Down
}

// Bindings lists the active bindings sorted by intent, then chord, for the
// help overlay.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.bindings))
	for c, intent := range k.bindings {
		out = append(out, Binding{Chord: c, Intent: intent})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Intent != out[j].Intent {
			return out[i].Intent < out[j].Intent
		}
		return out[i].Chord < out[j].Chord
	})
	return out
}

// chord names the event. Terminals disagree on whether control keys carry
// the Ctrl modifier flag, so the hyphenated bare names are normalized to the
// modifier form.
func chord(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&^tcell.ModShift == 0 {
		return string(ev.Rune())
	}
	return strings.ReplaceAll(ev.Name(), "Ctrl-", "Ctrl+")
}
