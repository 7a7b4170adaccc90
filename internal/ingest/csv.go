package ingest

import "strings"

// ParseCSV turns raw CSV text into rows of trimmed fields.
//
// Lines that are empty after trimming are dropped. Within a line a
// double quote toggles an inside-quotes state; a comma outside quotes
// ends the field. There is no escaped-quote handling: malformed
// quoting (an odd number of quotes) is not rejected, it silently
// shifts field boundaries for the rest of the line. A line with no
// commas yields a single-field row. The last field of a line is
// emitted without needing a trailing comma, and the last row without
// needing a trailing newline.
func ParseCSV(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, parseLine(line))
	}
	return rows
}

func parseLine(line string) []string {
	var fields []string
	var field strings.Builder
	insideQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			insideQuotes = !insideQuotes
		case ch == ',' && !insideQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(field.String()))
	return fields
}
