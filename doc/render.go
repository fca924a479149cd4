package doc

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	textlang "golang.org/x/text/language"
)

const (
	// MaxFunctions is the number of function-like declarations documented.
	MaxFunctions = 3
	// MaxClasses is the number of class-like declarations documented.
	MaxClasses = 2
	// UsageLines is the number of input lines copied into the usage example.
	UsageLines = 5

	fence = "```"
)

var (
	functionPattern = regexp.MustCompile(`function\s+(\w+)|const\s+(\w+)\s*=`)
	classPattern    = regexp.MustCompile(`class\s+(\w+)`)
)

// Outline is what the lexical scan found in the source text, truncated to
// MaxFunctions and MaxClasses. Names keep source order and duplicates.
type Outline struct {
	Functions []string
	Classes   []string
}

// Scan runs the two independent declaration passes over text.
func Scan(text string) Outline {
	var o Outline
	for _, m := range functionPattern.FindAllStringSubmatch(text, MaxFunctions) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		o.Functions = append(o.Functions, name)
	}
	for _, m := range classPattern.FindAllStringSubmatch(text, MaxClasses) {
		o.Classes = append(o.Classes, m[1])
	}
	return o
}

// Document is the generated Markdown. It is derived from a Request and
// never mutated.
type Document struct {
	Markdown string
}

// Generate renders the document for req.
func Generate(req Request) Document {
	return Document{Markdown: Render(req.Text, req.DocType, req.Language)}
}

// Render produces the mock documentation for text. It is a pure, total
// function: any input, including empty or non-code text, yields output.
func Render(text string, docType DocType, language Language) string {
	outline := Scan(text)
	lang := language.String()

	blocks := []string{overviewBlock(docType, lang)}
	if len(outline.Functions) > 0 {
		blocks = append(blocks, functionsBlock(outline.Functions, lang))
	}
	if len(outline.Classes) > 0 {
		blocks = append(blocks, classesBlock(outline.Classes, lang))
	}
	blocks = append(blocks,
		usageBlock(text, lang),
		installationBlock,
		contributingBlock,
		footerBlock,
	)
	return strings.Join(blocks, "\n\n")
}

// Title returns the top level heading text for docType, e.g. "Api Documentation".
func Title(docType DocType) string {
	return cases.Title(textlang.Und, cases.NoLower).String(docType.String()) + " Documentation"
}

func overviewBlock(docType DocType, lang string) string {
	return fmt.Sprintf("# %s\n\n## Overview\nAuto-generated documentation for your %s code.", Title(docType), lang)
}

func functionsBlock(names []string, lang string) string {
	entries := make([]string, 0, len(names))
	for _, name := range names {
		entries = append(entries, strings.Join([]string{
			fmt.Sprintf("### %s()", name),
			"**Description:** This function handles core functionality within the application.",
			"",
			"**Parameters:**",
			"- `param1` (string): Input parameter for processing",
			"- `param2` (number, optional): Configuration option",
			"",
			"**Returns:**",
			"- `Promise<Object>`: Returns processed result",
			"",
			"**Example:**",
			fence + lang,
			fmt.Sprintf("const result = await %s('example', 42);", name),
			"console.log(result);",
			fence,
		}, "\n"))
	}
	return "## Functions\n\n" + strings.Join(entries, "\n\n")
}

func classesBlock(names []string, lang string) string {
	entries := make([]string, 0, len(names))
	for _, name := range names {
		entries = append(entries, strings.Join([]string{
			"### " + name,
			"**Description:** Core class for handling application logic.",
			"",
			"**Constructor:**",
			fence + lang,
			fmt.Sprintf("new %s(options)", name),
			fence,
			"",
			"**Methods:**",
			"- `initialize()`: Sets up the instance",
			"- `process(data)`: Processes input data",
			"- `cleanup()`: Cleanup resources",
		}, "\n"))
	}
	return "## Classes\n\n" + strings.Join(entries, "\n\n")
}

func usageBlock(text, lang string) string {
	return strings.Join([]string{
		"## Usage Examples",
		"",
		fence + lang,
		"// Basic usage example",
		UsageSnippet(text),
		fence,
	}, "\n")
}

// UsageSnippet returns the first UsageLines lines of text verbatim.
func UsageSnippet(text string) string {
	lines := strings.SplitN(text, "\n", UsageLines+1)
	if len(lines) > UsageLines {
		lines = lines[:UsageLines]
	}
	return strings.Join(lines, "\n")
}

const (
	installationBlock = "## Installation\n\n" + fence + "bash\nnpm install your-package\n" + fence
	contributingBlock = "## Contributing\nPlease read our contributing guidelines before submitting pull requests."
	footerBlock       = "---\n*Generated automatically by DocGen*"
)
