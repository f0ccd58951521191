package format

import "strings"

// Template renders a downloadable sample file for a descriptor: the expected
// header line followed by its example rows. Fields containing the delimiter
// or quotes are quoted CSV-style.
func Template(d *Descriptor) string {
	delim := string(d.DelimiterRune())

	var b strings.Builder
	headers := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		headers[i] = quoteField(col.Header, delim)
	}
	b.WriteString(strings.Join(headers, delim))
	b.WriteString("\n")

	for _, row := range d.ExampleRows {
		fields := make([]string, len(row))
		for i, f := range row {
			fields[i] = quoteField(f, delim)
		}
		b.WriteString(strings.Join(fields, delim))
		b.WriteString("\n")
	}

	return b.String()
}

func quoteField(s, delim string) string {
	if !strings.Contains(s, delim) && !strings.Contains(s, `"`) && !strings.Contains(s, "\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
