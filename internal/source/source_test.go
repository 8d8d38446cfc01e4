package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, b []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	return path
}

func TestOpenPlainFile(t *testing.T) {
	path := writeInput(t, []byte("hello\nworld\n"))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, []byte("hello\nworld\n"), s.Bytes())
	assert.Equal(t, path, s.Path())

	watch, ok := s.WatchPath()
	assert.True(t, ok)
	assert.Equal(t, path, watch)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
}

func TestOpenDirectory(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func TestOpenEmptyFilePlaceholder(t *testing.T) {
	path := writeInput(t, nil)

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, []byte{0}, s.Bytes())
}

func TestOpenSkipsUTF8BOM(t *testing.T) {
	path := writeInput(t, []byte("\xEF\xBB\xBFmarked\n"))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, []byte("marked\n"), s.Bytes())
}

func TestOpenBOMOnlyFilePlaceholder(t *testing.T) {
	path := writeInput(t, []byte("\xEF\xBB\xBF"))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, []byte{0}, s.Bytes())
}

func TestOpenTranscodesUTF16LE(t *testing.T) {
	path := writeInput(t, []byte{0xFF, 0xFE, 'h', 0, 'i', 0, '\n', 0})

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, []byte("hi\n"), s.Bytes())
}

func TestOpenTranscodesUTF16BE(t *testing.T) {
	path := writeInput(t, []byte{0xFE, 0xFF, 0, 'h', 0, 'i', 0, '\n'})

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, []byte("hi\n"), s.Bytes())
}

func TestDrainPipe(t *testing.T) {
	s, err := Drain(strings.NewReader("piped\ndata\n"))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, []byte("piped\ndata\n"), s.Bytes())
	assert.Equal(t, "(stdin)", s.Path())

	_, ok := s.WatchPath()
	assert.False(t, ok)
}

func TestDrainEmptyPipe(t *testing.T) {
	s, err := Drain(strings.NewReader(""))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, []byte{0}, s.Bytes())
}

func TestRemapSeesAppendedContent(t *testing.T) {
	path := writeInput(t, []byte("one\n"))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("two\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, s.Remap())
	assert.Equal(t, []byte("one\ntwo\n"), s.Bytes())
}

func TestRemapRetranscodesUTF16(t *testing.T) {
	path := writeInput(t, []byte{0xFF, 0xFE, 'h', 0, 'i', 0})

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte{'!', 0})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, s.Remap())
	assert.Equal(t, []byte("hi!"), s.Bytes())
}

func TestRemapFailureKeepsBuffer(t *testing.T) {
	path := writeInput(t, []byte("survivor\n"))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, os.Remove(path))

	require.Error(t, s.Remap())
	assert.Equal(t, []byte("survivor\n"), s.Bytes())
}

func TestRemapOnDrainedInputIsNoop(t *testing.T) {
	s, err := Drain(strings.NewReader("fixed"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Remap())
	assert.Equal(t, []byte("fixed"), s.Bytes())
}

func TestCloseIsIdempotent(t *testing.T) {
	path := writeInput(t, []byte("bye\n"))

	s, err := Open(path)
	require.NoError(t, err)

	s.Close()
	s.Close()

	assert.Nil(t, s.Bytes())
}
