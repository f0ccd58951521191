// Package tabular parses delimited bank exports into candidate transactions.
// Each bank family has its own row-interpretation strategy; layout details
// come from an injected format.Descriptor.
package tabular

import "strings"

// tokenize splits one line into fields honoring CSV quoting rules: a quote
// toggles the in-quotes state, a delimiter inside quotes is literal, and a
// doubled quote inside quotes is an escaped literal quote.
func tokenize(line string, delimiter rune) []string {
	var (
		tokens   []string
		current  strings.Builder
		inQuotes bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case r == delimiter && !inQuotes:
			tokens = append(tokens, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	tokens = append(tokens, strings.TrimSpace(current.String()))

	return tokens
}

// splitLines breaks raw file content into non-empty trimmed lines.
func splitLines(content string) []string {
	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
