package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// highlightRule colors the given capture group of every match of pattern.
type highlightRule struct {
	pattern *regexp.Regexp
	style   lipgloss.Style
	group   int
}

// Syntax highlighting styles
var (
	keywordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("204")) // Pink
	stringStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))  // Green
	numberStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("209")) // Orange
	commentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243")) // Gray
	functionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))  // Blue
	builtinStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // Yellow
	typeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("141")) // Purple
	operatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")) // Red
	plainStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")) // Light gray
)

var (
	jsKeywords = `async|await|break|case|catch|class|const|continue|debugger|default|delete|do|else|export|extends|finally|for|from|function|if|import|in|instanceof|let|new|of|return|super|switch|this|throw|try|typeof|var|void|while|with|yield`
	tsKeywords = jsKeywords + `|abstract|as|declare|enum|implements|interface|keyof|namespace|private|protected|public|readonly|type`

	stringPattern   = regexp.MustCompile(`("(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'|` + "`" + `(?:[^` + "`" + `\\]|\\.)*` + "`" + `)`)
	numberPattern   = regexp.MustCompile(`\b(\d+\.?\d*([eE][+-]?\d+)?|0x[0-9a-fA-F]+|0b[01]+|0o[0-7]+)\b`)
	literalPattern  = regexp.MustCompile(`\b(true|false|null|undefined|NaN|Infinity)\b`)
	commentPattern  = regexp.MustCompile(`//.*$|/\*.*?\*/`)
	callPattern     = regexp.MustCompile(`\b([a-zA-Z_$][a-zA-Z0-9_$]*)\s*\(`)
	builtinPattern  = regexp.MustCompile(`\b(console|document|window|Array|Object|String|Number|Boolean|Date|Math|JSON|Promise|Map|Set|Symbol|Error|RegExp)\b`)
	tsTypePattern   = regexp.MustCompile(`\b(string|number|boolean|any|unknown|never|void|object|bigint|symbol)\b`)
	operatorPattern = regexp.MustCompile(`(===|!==|==|!=|<=|>=|<|>|\+=|-=|\*=|\/=|%=|&&|\|\||!|\+\+|--|=>)`)
)

// Rules are applied in order; earlier rules win where matches overlap.
var (
	javaScriptRules = []highlightRule{
		{pattern: commentPattern, style: commentStyle},
		{pattern: stringPattern, style: stringStyle},
		{pattern: numberPattern, style: numberStyle},
		{pattern: literalPattern, style: numberStyle},
		{pattern: regexp.MustCompile(`\b(` + jsKeywords + `)\b`), style: keywordStyle},
		{pattern: builtinPattern, style: builtinStyle},
		{pattern: callPattern, style: functionStyle, group: 1},
		{pattern: operatorPattern, style: operatorStyle},
	}
	typeScriptRules = []highlightRule{
		{pattern: commentPattern, style: commentStyle},
		{pattern: stringPattern, style: stringStyle},
		{pattern: numberPattern, style: numberStyle},
		{pattern: literalPattern, style: numberStyle},
		{pattern: regexp.MustCompile(`\b(` + tsKeywords + `)\b`), style: keywordStyle},
		{pattern: tsTypePattern, style: typeStyle},
		{pattern: builtinPattern, style: builtinStyle},
		{pattern: callPattern, style: functionStyle, group: 1},
		{pattern: operatorPattern, style: operatorStyle},
	}
)

// HighlightCode applies syntax highlighting for the given language or file
// extension. Unknown languages are returned unchanged.
func HighlightCode(code, language string) string {
	var rules []highlightRule
	switch strings.ToLower(strings.TrimPrefix(language, ".")) {
	case "javascript", "js", "jsx", "mjs", "cjs":
		rules = javaScriptRules
	case "typescript", "ts", "tsx":
		rules = typeScriptRules
	default:
		return code
	}

	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lines[i] = highlightLine(line, rules)
	}
	return strings.Join(lines, "\n")
}

// highlightLine styles one line. Multi-line comments are only recognized
// when they open and close on the same line.
func highlightLine(line string, rules []highlightRule) string {
	if strings.TrimSpace(line) == "" {
		return line
	}

	// spans[i] holds the styled text of a token starting at byte i; claimed
	// marks every byte already covered by a token.
	spans := make(map[int]string)
	claimed := make([]bool, len(line))

	for _, rule := range rules {
		for _, match := range rule.pattern.FindAllStringSubmatchIndex(line, -1) {
			start, end := match[rule.group*2], match[rule.group*2+1]
			if start < 0 || start == end {
				continue
			}
			free := true
			for j := start; j < end; j++ {
				if claimed[j] {
					free = false
					break
				}
			}
			if !free {
				continue
			}
			for j := start; j < end; j++ {
				claimed[j] = true
			}
			spans[start] = rule.style.Render(line[start:end])
		}
	}

	var b strings.Builder
	for i, r := range line {
		if styled, ok := spans[i]; ok {
			b.WriteString(styled)
		} else if !claimed[i] {
			b.WriteString(plainStyle.Render(string(r)))
		}
	}
	return b.String()
}
