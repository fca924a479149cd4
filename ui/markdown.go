package ui

import (
	"strings"

	"docgen/log"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown content for terminal display using the
// named glamour style ("auto", "dark", "light" or "notty").
// Returns the rendered string and any error that occurred; on error the
// raw content is returned.
func RenderMarkdown(content string, width int, style string) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}

	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.ErrorLog.Printf("Failed to create markdown renderer: %v", err)
		return content, err
	}

	rendered, err := r.Render(content)
	if err != nil {
		log.ErrorLog.Printf("Failed to render markdown: %v", err)
		return content, err
	}

	// Remove trailing newlines that glamour adds
	return strings.TrimRight(rendered, "\n"), nil
}

// StripMarkdown removes markdown formatting from text, useful for titles
// and one line previews
func StripMarkdown(content string) string {
	content = strings.ReplaceAll(content, "```", "")
	content = strings.ReplaceAll(content, "`", "")

	for _, marker := range []string{"**", "__", "*", "_"} {
		content = strings.ReplaceAll(content, marker, "")
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			lines[i] = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}
	content = strings.Join(lines, "\n")

	// [text](url) -> text
	for {
		start := strings.Index(content, "[")
		if start == -1 {
			break
		}
		mid := strings.Index(content[start:], "](")
		if mid == -1 {
			break
		}
		mid += start
		end := strings.Index(content[mid:], ")")
		if end == -1 {
			break
		}
		end += mid
		content = content[:start] + content[start+1:mid] + content[end+1:]
	}

	return content
}

// FirstHeading returns the text of the first markdown heading, stripped of
// formatting, or "" when there is none.
func FirstHeading(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			return StripMarkdown(line)
		}
	}
	return ""
}
