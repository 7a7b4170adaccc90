package ingest

import "strings"

// ColumnNotFound is the index sentinel for a header role with no match.
const ColumnNotFound = -1

// Columns holds the header index for each semantic role, or
// ColumnNotFound where no header matched.
type Columns struct {
	Name    int
	Email   int
	Phone   int
	Message int
}

// role keywords matched as case-insensitive substrings against headers.
var (
	nameKeywords    = []string{"name", "customer"}
	emailKeywords   = []string{"email"}
	phoneKeywords   = []string{"phone"}
	messageKeywords = []string{"message", "content", "inquiry"}
)

// MapColumns maps arbitrary header names to semantic roles. Each role
// takes the first header whose lower-cased trimmed text contains one
// of the role's keywords; roles resolve independently. Name and
// message are required by the importer, email and phone are optional.
func MapColumns(headers []string) Columns {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	return Columns{
		Name:    findColumn(lowered, nameKeywords),
		Email:   findColumn(lowered, emailKeywords),
		Phone:   findColumn(lowered, phoneKeywords),
		Message: findColumn(lowered, messageKeywords),
	}
}

// HasRequired reports whether both required roles resolved.
func (c Columns) HasRequired() bool {
	return c.Name != ColumnNotFound && c.Message != ColumnNotFound
}

// minFields is the smallest row length that covers every required
// column index.
func (c Columns) minFields() int {
	n := c.Name
	if c.Message > n {
		n = c.Message
	}
	return n + 1
}

func findColumn(headers []string, keywords []string) int {
	for i, h := range headers {
		for _, k := range keywords {
			if strings.Contains(h, k) {
				return i
			}
		}
	}
	return ColumnNotFound
}

// fieldAt returns the trimmed field at idx, or "" when idx is
// ColumnNotFound or past the end of the row.
func fieldAt(row []string, idx int) string {
	if idx == ColumnNotFound || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
