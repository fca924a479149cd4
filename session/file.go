package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SourceExtensions are offered by the file picker. They are a hint only;
// ReadSource accepts any file.
var SourceExtensions = []string{".js", ".jsx", ".ts", ".tsx"}

// HasSourceExtension reports whether path ends in one of SourceExtensions.
func HasSourceExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadSource returns the full content of path as text.
func ReadSource(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("failed to read %s: is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
