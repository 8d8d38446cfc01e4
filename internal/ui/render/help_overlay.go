package render

import (
	"fmt"

	"github.com/kk-code-lab/rless/internal/ui/input"
)

// DrawHelp paints the key-binding reference over the whole screen. The
// overlay replaces the page frame; the next Draw restores it.
func (r *Renderer) DrawHelp(bindings []input.Binding) {
	r.screen.Clear()
	w, h := r.screen.Size()

	title := " Help "
	titleStart := 0
	if tw := measureTextWidth(title); w > tw {
		titleStart = (w - tw) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, r.style.Bold(true))

	row := 2
	for _, b := range bindings {
		if row >= h-1 {
			break
		}
		line := fmt.Sprintf("  %-10s %s", chordLabel(b.Chord), b.Intent)
		r.drawTextLine(2, row, w-4, line, r.style)
		row++
	}

	if h > 0 {
		r.drawTextLine(0, h-1, w, "? toggle, q quit, any other key closes", r.style.Dim(true))
	}
	r.screen.Show()
}

// chordLabel names chords whose literal form would be invisible in a list.
func chordLabel(chord string) string {
	if chord == " " {
		return "Space"
	}
	return chord
}
