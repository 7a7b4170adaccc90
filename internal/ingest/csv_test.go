package ingest

import (
	"reflect"
	"testing"
)

func TestParseCSV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want [][]string
	}{
		{
			name: "simple rows",
			text: "name,email,message\nJohn,john@x.com,Hello",
			want: [][]string{
				{"name", "email", "message"},
				{"John", "john@x.com", "Hello"},
			},
		},
		{
			name: "quoted field with comma",
			text: `John,"Hello, I need help"`,
			want: [][]string{{"John", "Hello, I need help"}},
		},
		{
			name: "fields are trimmed",
			text: "  John  ,  Hello  ",
			want: [][]string{{"John", "Hello"}},
		},
		{
			name: "blank lines dropped",
			text: "a,b\n\n   \nc,d\n",
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "no trailing newline",
			text: "a,b\nc,d",
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "windows line endings leave cr in last field trimmed",
			text: "a,b\r\nc,d\r\n",
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "single column",
			text: "message\nhelp me",
			want: [][]string{{"message"}, {"help me"}},
		},
		{
			name: "empty fields preserved",
			text: "a,,c",
			want: [][]string{{"a", "", "c"}},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "only whitespace",
			text: "   \n \n",
			want: nil,
		},
		{
			name: "unterminated quote swallows rest of line",
			text: `John,"broken quote,more`,
			want: [][]string{{"John", "broken quote,more"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseCSV(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCSV(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func FuzzParseCSV(f *testing.F) {
	f.Add("name,message\nJohn,Hello")
	f.Add(`a,"b,c",d`)
	f.Add("\"\n\"\"\n,,,")
	f.Add("a\x00b,\r\r\n")

	f.Fuzz(func(t *testing.T, text string) {
		rows := ParseCSV(text)
		for i, row := range rows {
			if len(row) == 0 {
				t.Errorf("row %d is empty, every kept row should have at least one field", i)
			}
		}
	})
}
