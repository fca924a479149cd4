package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultFilename is the name documents are saved under.
	DefaultFilename = "documentation.md"
	// MarkdownContentType is the MIME type of saved documents.
	MarkdownContentType = "text/markdown"

	maxNameAttempts = 1000
)

// Download describes a saved document.
type Download struct {
	Path        string
	ContentType string
	Size        int
}

// Save writes markdown into dir. An empty filename means DefaultFilename.
// Existing files are never overwritten: the name gets a " (n)" suffix the
// way browsers do it. The content is written to a temporary file first and
// renamed into place; the temporary file is removed on failure.
func Save(markdown, dir, filename string) (Download, error) {
	if filename == "" {
		filename = DefaultFilename
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Download{}, fmt.Errorf("failed to create download directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".docgen-*.tmp")
	if err != nil {
		return Download{}, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.WriteString(markdown); err != nil {
		cleanup()
		return Download{}, fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return Download{}, fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return Download{}, fmt.Errorf("failed to write document: %w", err)
	}

	target, err := availablePath(dir, filename)
	if err != nil {
		_ = os.Remove(tmpName)
		return Download{}, err
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return Download{}, fmt.Errorf("failed to save document: %w", err)
	}

	return Download{
		Path:        target,
		ContentType: MarkdownContentType,
		Size:        len(markdown),
	}, nil
}

// availablePath returns dir/filename, or dir/"name (n).ext" for the
// smallest n that does not exist yet.
func availablePath(dir, filename string) (string, error) {
	candidate := filepath.Join(dir, filename)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	for n := 1; n < maxNameAttempts; n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", base, n, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("failed to find a free name for %s in %s", filename, dir)
}
