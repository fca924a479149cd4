package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRoot executes the root command with args and stdin, resetting the
// package level flags afterwards.
func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		reset := func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
		rootCmd.PersistentFlags().VisitAll(reset)
		renderCmd.Flags().VisitAll(reset)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
	})

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderFromStdin(t *testing.T) {
	out, err := runRoot(t, "function add(a, b) {}\nclass Calc {}\n", "render", "-t", "function")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Function Documentation"))
	assert.Contains(t, out, "### add()")
	assert.Contains(t, out, "### Calc")
	assert.Contains(t, out, "```javascript")
}

func TestRenderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget.ts")
	require.NoError(t, os.WriteFile(path, []byte("export const widget = () => {}"), 0644))

	out, err := runRoot(t, "", "render", "--file", path, "--language", "typescript")
	require.NoError(t, err)

	assert.Contains(t, out, "### widget()")
	assert.Contains(t, out, "```typescript")
}

func TestRenderToDirectory(t *testing.T) {
	dir := t.TempDir()

	_, err := runRoot(t, "const a = 1", "render", "--out-dir", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "documentation.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "### a()")
}

func TestRenderRejectsBlankInput(t *testing.T) {
	_, err := runRoot(t, "  \n\t", "render")
	assert.Error(t, err)
}

func TestRenderRejectsUnknownLanguage(t *testing.T) {
	_, err := runRoot(t, "const a = 1", "render", "-l", "cobol")
	assert.ErrorContains(t, err, "cobol")
}
