package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawTextLine paints text starting at (startX, y), advancing by display
// width so wide runes occupy two cells. Combining marks are attached to the
// cell of their base rune. Painting stops at maxWidth cells.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		if x-startX >= maxWidth {
			break
		}

		mainc := printableRune(runes[i])
		i++

		var combc []rune
		for i < len(runes) && combiningRune(runes[i]) {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)

		w := runewidth.RuneWidth(mainc)
		if w < 1 {
			w = 1
		}
		x += w
	}

	return x
}

// printableRune substitutes a space for runes the terminal would act on
// instead of displaying: C0 controls, DEL, and the empty-input placeholder.
func printableRune(ru rune) rune {
	if ru < ' ' || ru == 0x7f {
		return ' '
	}
	return ru
}

// combiningRune reports whether ru modifies the preceding base cell rather
// than occupying its own.
func combiningRune(ru rune) bool {
	return ru >= 0x0300 && runewidth.RuneWidth(ru) == 0
}

// measureTextWidth sums display widths, for centering short labels.
func measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += runewidth.RuneWidth(ru)
	}
	return width
}
