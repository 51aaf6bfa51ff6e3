// Package text provides help text formatting for CLI commands.
package text

import (
	"strings"

	"github.com/MakeNowJust/heredoc"
)

// Indentation is the standard indentation for CLI help examples.
const Indentation = `  `

// LongDesc dedents a command's long description and trims surrounding blank lines, so
// descriptions can be written as indented raw strings.
func LongDesc(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	return strings.TrimSpace(heredoc.Doc(s))
}

// Examples trims a command's examples and indents every line by Indentation.
func Examples(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = Indentation + strings.TrimSpace(line)
	}

	return strings.Join(lines, "\n")
}
