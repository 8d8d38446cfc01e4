package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rless/internal/reader"
)

// Renderer paints pages onto a tcell screen. It owns no scroll state and
// issues no reads; the dispatch loop hands it finished pages.
type Renderer struct {
	screen tcell.Screen
	style  tcell.Style
}

// NewRenderer creates a renderer over screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		style:  tcell.StyleDefault,
	}
}

// Draw paints page from the top-left cell. A nil page only flushes, so the
// previous frame stays visible; intents that run past an edge of the content
// render this way.
func (r *Renderer) Draw(page *reader.Page) {
	if page == nil {
		r.screen.Show()
		return
	}

	r.screen.Clear()
	w, _ := r.screen.Size()
	for y, row := range strings.Split(page.Text, "\n\r") {
		r.drawTextLine(0, y, w, row, r.style)
	}
	r.screen.Show()
}
