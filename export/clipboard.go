package export

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// CopyToClipboard writes markdown to the system clipboard. It is best
// effort: on headless systems without a clipboard provider it fails.
func CopyToClipboard(markdown string) error {
	if err := writeClipboard(markdown); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
