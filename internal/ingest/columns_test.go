package ingest

import "testing"

func TestMapColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers []string
		want    Columns
	}{
		{
			name:    "exact headers",
			headers: []string{"name", "email", "phone", "message"},
			want:    Columns{Name: 0, Email: 1, Phone: 2, Message: 3},
		},
		{
			name:    "variant headers",
			headers: []string{"Customer Name", "E-Mail Address", "Phone Number", "Inquiry"},
			want:    Columns{Name: 0, Email: 1, Phone: 2, Message: 3},
		},
		{
			name:    "content maps to message",
			headers: []string{"full_name", "content"},
			want:    Columns{Name: 0, Email: ColumnNotFound, Phone: ColumnNotFound, Message: 1},
		},
		{
			name:    "reordered headers",
			headers: []string{"Message", "Phone", "Name"},
			want:    Columns{Name: 2, Email: ColumnNotFound, Phone: 1, Message: 0},
		},
		{
			name:    "missing required headers",
			headers: []string{"id", "created_at"},
			want:    Columns{Name: ColumnNotFound, Email: ColumnNotFound, Phone: ColumnNotFound, Message: ColumnNotFound},
		},
		{
			name:    "first match wins",
			headers: []string{"customer", "name"},
			want:    Columns{Name: 0, Email: ColumnNotFound, Phone: ColumnNotFound, Message: ColumnNotFound},
		},
		{
			name:    "empty headers",
			headers: nil,
			want:    Columns{Name: ColumnNotFound, Email: ColumnNotFound, Phone: ColumnNotFound, Message: ColumnNotFound},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MapColumns(tt.headers); got != tt.want {
				t.Errorf("MapColumns(%v) = %+v, want %+v", tt.headers, got, tt.want)
			}
		})
	}
}

func TestColumns_HasRequired(t *testing.T) {
	t.Parallel()

	if !(Columns{Name: 0, Message: 1, Email: ColumnNotFound, Phone: ColumnNotFound}).HasRequired() {
		t.Error("name+message should satisfy HasRequired")
	}
	if (Columns{Name: 0, Message: ColumnNotFound}).HasRequired() {
		t.Error("missing message should fail HasRequired")
	}
	if (Columns{Name: ColumnNotFound, Message: 1}).HasRequired() {
		t.Error("missing name should fail HasRequired")
	}
}

func TestColumns_MinFields(t *testing.T) {
	t.Parallel()

	if got := (Columns{Name: 0, Message: 3}).minFields(); got != 4 {
		t.Errorf("minFields = %d, want 4", got)
	}
	if got := (Columns{Name: 2, Message: 1}).minFields(); got != 3 {
		t.Errorf("minFields = %d, want 3", got)
	}
}

func TestFieldAt(t *testing.T) {
	t.Parallel()

	row := []string{"John", " john@x.com ", "555"}

	if got := fieldAt(row, 1); got != "john@x.com" {
		t.Errorf("fieldAt trims: got %q", got)
	}
	if got := fieldAt(row, ColumnNotFound); got != "" {
		t.Errorf("fieldAt(ColumnNotFound) = %q, want empty", got)
	}
	if got := fieldAt(row, 5); got != "" {
		t.Errorf("fieldAt past end = %q, want empty", got)
	}
}
