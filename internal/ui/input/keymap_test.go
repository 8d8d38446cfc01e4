package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rless/internal/scroll"
)

func TestDefaultBindings(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want scroll.Intent
	}{
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), scroll.Exit},
		{"Q quits", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), scroll.Exit},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), scroll.Exit},
		{"ctrl-c without mod flag quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), scroll.Exit},
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), scroll.Up},
		{"k scrolls up", tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), scroll.Up},
		{"page up", tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone), scroll.Up},
		{"arrow down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), scroll.Down},
		{"enter advances", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), scroll.Down},
		{"space advances", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), scroll.Down},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), scroll.Down},
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), scroll.Left},
		{"arrow right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), scroll.Right},
		{"home rewinds", tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone), scroll.Top},
		{"g rewinds", tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone), scroll.Top},
		{"end jumps", tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone), scroll.Bottom},
		{"shifted G jumps", tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModShift), scroll.Bottom},
		{"r reloads", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), scroll.Reload},
		{"ctrl-l reloads", tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl), scroll.Reload},
		{"question mark toggles help", tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone), scroll.ToggleHelp},
		{"ctrl-z suspends", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), scroll.Suspend},
	}

	k := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := k.Translate(tt.ev); got != tt.want {
				t.Fatalf("Translate(%s) = %v, want %v", tt.ev.Name(), got, tt.want)
			}
		})
	}
}

func TestUnboundKeysScrollDown(t *testing.T) {
	k := Default()

	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone),
	} {
		if got := k.Translate(ev); got != scroll.Down {
			t.Fatalf("Translate(%s) = %v, want fallback %v", ev.Name(), got, scroll.Down)
		}
	}
}

func TestApplyOverridesRebinds(t *testing.T) {
	k := Default()

	err := k.ApplyOverrides(map[string]string{
		"d": "up",
		"q": "down",
	})
	if err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}

	if got := k.Translate(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone)); got != scroll.Up {
		t.Fatalf("rebound d = %v, want %v", got, scroll.Up)
	}
	if got := k.Translate(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); got != scroll.Down {
		t.Fatalf("rebound q = %v, want %v", got, scroll.Down)
	}
}

func TestApplyOverridesActionCase(t *testing.T) {
	k := Default()

	if err := k.ApplyOverrides(map[string]string{"d": "Down"}); err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}
	if got := k.Translate(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone)); got != scroll.Down {
		t.Fatalf("Translate(d) = %v, want %v", got, scroll.Down)
	}
}

func TestApplyOverridesRejectsUnknownAction(t *testing.T) {
	k := Default()

	err := k.ApplyOverrides(map[string]string{"z": "warp"})
	if err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestBindingsOrdered(t *testing.T) {
	k := Default()

	bindings := k.Bindings()
	if len(bindings) == 0 {
		t.Fatal("no bindings listed")
	}
	for i := 1; i < len(bindings); i++ {
		prev, cur := bindings[i-1], bindings[i]
		if cur.Intent < prev.Intent {
			t.Fatalf("bindings out of intent order at %d: %v before %v", i, prev, cur)
		}
		if cur.Intent == prev.Intent && cur.Chord < prev.Chord {
			t.Fatalf("bindings out of chord order at %d: %q before %q", i, prev.Chord, cur.Chord)
		}
	}
}
