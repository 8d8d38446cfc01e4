package source

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Source owns the byte buffer a reader indexes: an open file, its read-only
// mapping, and any temporary spill file produced by draining a pipe or
// transcoding a UTF-16 input. The buffer handed out by Bytes is immutable
// until the next Remap.
type Source struct {
	path    string // original file path; empty for drained input
	display string
	file    *os.File
	spill   string // backing temp file to delete on release
	data    []byte // live mapping; nil when the input is empty
	view    []byte // data with any byte-order mark skipped
}

// Open maps the file at path. UTF-16 input is transcoded to UTF-8 in a
// temporary file first; the original path is kept so Remap can pick up new
// content.
func Open(path string) (*Source, error) {
	s := &Source{path: path, display: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Drain spools r into a temporary file and maps that. Used when the input
// arrives on a pipe and cannot be mapped in place.
func Drain(r io.Reader) (*Source, error) {
	spool, err := spoolTemp(r)
	if err != nil {
		return nil, err
	}
	s := &Source{display: "(stdin)"}
	if err := s.attachSniffed(spool, true); err != nil {
		return nil, err
	}
	return s, nil
}

// Bytes is the buffer to index. Never empty: an empty input is represented
// by a single placeholder byte.
func (s *Source) Bytes() []byte { return s.view }

// Path is the display name of the input.
func (s *Source) Path() string { return s.display }

// WatchPath reports the on-disk path to watch for changes. Drained input has
// none.
func (s *Source) WatchPath() (string, bool) {
	return s.path, s.path != ""
}

// Remap re-runs the open pipeline so a grown or rewritten file is picked up.
// On failure the existing buffer stays live and the error is returned for
// logging; the pager keeps serving the stale mapping.
func (s *Source) Remap() error {
	if s.path == "" {
		return nil
	}
	return s.load()
}

// Close unmaps the buffer and deletes any temporary spill file.
func (s *Source) Close() {
	s.release()
}

func (s *Source) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	return s.attachSniffed(f, false)
}

// attachSniffed inspects the first bytes of f for a byte-order mark and
// attaches the file directly, minus the mark, or through a UTF-8 transcode.
// f is consumed: on any failure it is closed (and removed when it is a
// temporary) while the previously attached buffer stays live.
func (s *Source) attachSniffed(f *os.File, temp bool) error {
	head := make([]byte, 3)
	n, err := f.ReadAt(head, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		discard(f, temp)
		return err
	}

	switch enc := detectEncoding(head[:n]); enc {
	case encodingUTF16LE, encodingUTF16BE:
		spool, terr := transcodeTemp(f, enc)
		discard(f, temp)
		if terr != nil {
			return terr
		}
		return s.attach(spool, 0, true)
	case encodingUTF8BOM:
		return s.attach(f, 3, temp)
	default:
		return s.attach(f, 0, temp)
	}
}

// attach maps f and swaps it in as the live buffer, releasing the previous
// one only after the new mapping is established.
func (s *Source) attach(f *os.File, skip int, temp bool) error {
	info, err := f.Stat()
	if err != nil {
		discard(f, temp)
		return err
	}
	if info.IsDir() {
		discard(f, temp)
		return fmt.Errorf("%s is a directory", s.display)
	}

	var data []byte
	if size := int(info.Size()); size > 0 {
		data, err = mapFile(f, size)
		if err != nil {
			discard(f, temp)
			return fmt.Errorf("map %s: %w", s.display, err)
		}
	}

	s.release()
	s.file = f
	if temp {
		s.spill = f.Name()
	}
	s.data = data

	view := data
	if skip > 0 && skip <= len(view) {
		view = view[skip:]
	}
	if len(view) == 0 {
		view = placeholder()
	}
	s.view = view
	return nil
}

func (s *Source) release() {
	if s.data != nil {
		_ = unmapFile(s.data)
		s.data = nil
	}
	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
	if s.spill != "" {
		_ = os.Remove(s.spill)
		s.spill = ""
	}
	s.view = nil
}

func discard(f *os.File, temp bool) {
	_ = f.Close()
	if temp {
		_ = os.Remove(f.Name())
	}
}

// spoolTemp copies r into a fresh temporary file opened for both writing and
// mapping.
func spoolTemp(r io.Reader) (*os.File, error) {
	spool, err := os.CreateTemp("", "rless-*.txt")
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(spool, r); err != nil {
		discard(spool, true)
		return nil, fmt.Errorf("spool input: %w", err)
	}
	return spool, nil
}

// placeholder stands in for empty input so the reader always has one
// addressable line.
func placeholder() []byte { return make([]byte, 1) }
