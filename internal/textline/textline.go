// Package textline normalizes extracted page text into clean content lines.
// It is pure string processing with no browser or DOM dependency.
package textline

import (
	"regexp"
	"strings"
)

// codePatterns flags lines that are leftover inline script rather than prose.
// The list is evaluated in order with any-match short-circuit semantics; the
// particular pattern that matched does not matter, only whether one did.
// It is a best-effort heuristic: prose ending in a semicolon will be dropped
// and that is an accepted trade-off.
var codePatterns = []*regexp.Regexp{
	// statement keyword at line start
	regexp.MustCompile(`^(?:var|let|const|function|if|else|for|while|return|class)\s`),
	// event binding
	regexp.MustCompile(`addEventListener\(|\.on\(`),
	// ready handlers
	regexp.MustCompile(`\$\(document\)\.ready|DOMContentLoaded`),
	// async requests
	regexp.MustCompile(`fetch\(|XMLHttpRequest|\$\.ajax|axios\.`),
	// logging
	regexp.MustCompile(`console\.(?:log|warn|error|info|debug)`),
	// DOM queries
	regexp.MustCompile(`document\.(?:querySelector|getElementById|getElementsBy|createElement)`),
	// browser globals with property access
	regexp.MustCompile(`window\.[A-Za-z_$]|document\.[A-Za-z_$]`),
	// promises and async/await
	regexp.MustCompile(`\.then\(|\.catch\(|\bawait\s|\basync\s|=>`),
	// lone braces
	regexp.MustCompile(`^[{}]$`),
	// statement terminator
	regexp.MustCompile(`;$`),
}

// IsCodeLike reports whether a single trimmed line looks like program code.
func IsCodeLike(line string) bool {
	for _, re := range codePatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Normalize splits a raw text block into lines, trims each, and drops lines
// that are empty or code-like. The surviving lines keep their original order.
func Normalize(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || IsCodeLike(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
