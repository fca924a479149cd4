package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDefaultFilename(t *testing.T) {
	dir := t.TempDir()

	d, err := Save("# Api Documentation", dir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "documentation.md"), d.Path)
	assert.Equal(t, "text/markdown", d.ContentType)
	assert.Equal(t, len("# Api Documentation"), d.Size)

	data, err := os.ReadFile(d.Path)
	require.NoError(t, err)
	assert.Equal(t, "# Api Documentation", string(data))
}

func TestSaveNeverOverwrites(t *testing.T) {
	dir := t.TempDir()

	first, err := Save("one", dir, "")
	require.NoError(t, err)
	second, err := Save("two", dir, "")
	require.NoError(t, err)
	third, err := Save("three", dir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "documentation.md"), first.Path)
	assert.Equal(t, filepath.Join(dir, "documentation (1).md"), second.Path)
	assert.Equal(t, filepath.Join(dir, "documentation (2).md"), third.Path)

	data, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestSaveLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := Save("content", dir, "notes.md")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "notes.md", entries[0].Name())
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	d, err := Save("x", dir, "")
	require.NoError(t, err)
	assert.FileExists(t, d.Path)
}

func TestCopyToClipboard(t *testing.T) {
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })

	var written string
	writeClipboard = func(s string) error {
		written = s
		return nil
	}
	require.NoError(t, CopyToClipboard("# Doc"))
	assert.Equal(t, "# Doc", written)

	writeClipboard = func(string) error { return errors.New("no xclip") }
	assert.ErrorContains(t, CopyToClipboard("# Doc"), "no xclip")
}
