package reader

import (
	"bytes"
	"math"
	"strings"

	"github.com/kk-code-lab/rless/internal/textutil"
)

// lineSpan is one discovered line: start is the offset of its first byte,
// end is the offset of its newline terminator, or the buffer length when the
// final line is unterminated.
type lineSpan struct {
	start int
	end   int
}

// Page is the rendered text for one viewport request. Rows counts the rows
// actually present; Cols echoes the requested width, or 0 when no row
// produced visible text past the column offset.
type Page struct {
	Text string
	Rows int
	Cols int
}

// PagedReader serves row/column windows over an immutable byte buffer,
// discovering line boundaries lazily. Spans are appended in line order and
// already-classified bytes are never rescanned, so repeated page requests
// over visited regions cost index lookups only.
//
// Not safe for concurrent use; the dispatch loop owns it exclusively.
type PagedReader struct {
	data  []byte
	lines []lineSpan
}

// New returns a reader over data. The buffer must be at least one byte long;
// an empty logical source is represented by a 1-byte placeholder.
func New(data []byte) *PagedReader {
	return &PagedReader{data: data}
}

// ReadPage renders the viewport anchored at (rowOff, colOff) with the given
// dimensions. Offsets beyond the available content yield a smaller or empty
// page, never an error.
func (r *PagedReader) ReadPage(rowOff, colOff, rows, cols int) Page {
	if rowOff < 0 {
		rowOff = 0
	}
	if colOff < 0 {
		colOff = 0
	}
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}

	target := rowOff + rows
	if target < rowOff {
		target = math.MaxInt
	}
	r.ensureRows(target)

	lo := rowOff
	if lo > len(r.lines) {
		lo = len(r.lines)
	}
	hi := len(r.lines)
	if hi-lo > rows {
		hi = lo + rows
	}

	var b strings.Builder
	hasText := false
	for i := lo; i < hi; i++ {
		if i > lo {
			b.WriteString("\n\r")
		}
		row := r.rowWindow(r.lines[i], colOff, cols)
		if len(row) > 0 {
			hasText = true
		}
		b.WriteString(textutil.FlattenTabs(textutil.DecodeLossy(row)))
	}

	page := Page{Text: b.String(), Rows: hi - lo}
	if hasText {
		page.Cols = cols
	}
	return page
}

// rowWindow selects the visible bytes of one line: the window never extends
// past the line's end and never starts past its own end, so a short line
// under a large column offset contributes an empty slice.
func (r *PagedReader) rowWindow(s lineSpan, colOff, cols int) []byte {
	start, end := s.start, s.end
	if colOff >= end-start {
		return nil
	}
	start += colOff
	if end-start > cols {
		end = start + cols
	}
	return r.data[start:end]
}

// ensureRows guarantees that at least target lines are indexed, or that the
// buffer is exhausted.
func (r *PagedReader) ensureRows(target int) {
	if target <= len(r.lines) || r.FullyScanned() {
		return
	}
	r.scan(target)
}

// EnsureAll discovers every remaining line. Used for jumps to the end of the
// buffer.
func (r *PagedReader) EnsureAll() {
	if r.FullyScanned() {
		return
	}
	r.scan(math.MaxInt)
}

// scan resumes after the last known terminator and appends newly discovered
// spans. It looks ahead up to twice the missing delta before deferring the
// rest, so occasional large jumps don't degrade into per-row scans. Reaching
// the final byte without a terminator closes one trailing unterminated span.
func (r *PagedReader) scan(target int) {
	missing := target - len(r.lines)
	limit := missing * 2
	if limit < missing {
		limit = math.MaxInt
	}

	next := 0
	if n := len(r.lines); n > 0 {
		next = r.lines[n-1].end + 1
	}

	for found := 0; found < limit; found++ {
		rel := bytes.IndexByte(r.data[next:], '\n')
		if rel < 0 {
			if next < len(r.data) {
				r.lines = append(r.lines, lineSpan{start: next, end: len(r.data)})
			}
			return
		}
		r.lines = append(r.lines, lineSpan{start: next, end: next + rel})
		next += rel + 1
	}
}

// LineCount reports how many lines have been discovered so far.
func (r *PagedReader) LineCount() int {
	return len(r.lines)
}

// FullyScanned reports whether the last discovered span reaches the final
// byte of the buffer.
func (r *PagedReader) FullyScanned() bool {
	if len(r.lines) == 0 {
		return false
	}
	return r.lines[len(r.lines)-1].end >= len(r.data)-1
}
