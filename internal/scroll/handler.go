package scroll

import (
	"math"

	"github.com/kk-code-lab/rless/internal/reader"
)

// Handler owns the viewport anchor. Every offset mutation happens here, on
// the dispatch goroutine, so the fields need no locking.
type Handler struct {
	rd  *reader.PagedReader
	row int
	col int
}

func NewHandler(rd *reader.PagedReader) *Handler {
	return &Handler{rd: rd}
}

// SetReader swaps the underlying reader after the source was remapped. The
// anchor is preserved; callers follow up with Reload to re-read the page.
func (h *Handler) SetReader(rd *reader.PagedReader) {
	h.rd = rd
}

// Offsets reports the current viewport anchor.
func (h *Handler) Offsets() (row, col int) {
	return h.row, h.col
}

// Initial moves the anchor to the origin and reads the first page.
func (h *Handler) Initial(rows, cols int) *reader.Page {
	h.row, h.col = 0, 0
	return h.page(rows, cols)
}

// Apply executes one movement intent against the given viewport dimensions
// and returns the page to draw. A nil page means the screen keeps its
// current frame.
//
// Vertical movement always commits, even past the end of content, so a long
// overshoot can be walked back with Up. Horizontal movement to the right
// commits only when at least one visible row still has text; otherwise the
// anchor reverts.
func (h *Handler) Apply(intent Intent, rows, cols int) *reader.Page {
	switch intent {
	case Up:
		h.row = saturatingSub(h.row, rows)
	case Down:
		h.row = saturatingAdd(h.row, rows)
	case Left:
		h.col = saturatingSub(h.col, cols)
	case Right:
		prev := h.col
		h.col = saturatingAdd(h.col, cols)
		page := h.page(rows, cols)
		if page == nil {
			h.col = prev
		}
		return page
	case Top:
		h.row = 0
	case Bottom:
		h.rd.EnsureAll()
		h.row = saturatingSub(h.rd.LineCount(), rows)
	case Reload:
	default:
		return nil
	}
	return h.page(rows, cols)
}

// page reads at the current anchor. Pages with no selected rows or no
// visible text collapse to nil.
func (h *Handler) page(rows, cols int) *reader.Page {
	p := h.rd.ReadPage(h.row, h.col, rows, cols)
	if p.Rows == 0 || p.Cols == 0 {
		return nil
	}
	return &p
}

func saturatingAdd(a, b int) int {
	if s := a + b; s >= a {
		return s
	}
	return math.MaxInt
}

func saturatingSub(a, b int) int {
	if a > b {
		return a - b
	}
	return 0
}
