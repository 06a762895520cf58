package search

import (
	"reflect"
	"testing"
)

var history = []string{
	"3f2a9c1 - 1245 Repro",
	"3f2a9c1 - 1246 Not Repro",
	"b77e01d - 88 Repro",
	"garbage line",
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Query
	}{
		{"repro", Query{Pattern: "repro"}},
		{"Not", Query{Pattern: "Not", CaseSensitive: true}},
		{"~^b7", Query{Pattern: "^b7", IsRegex: true}},
		{"", Query{}},
	}
	for _, tt := range tests {
		if got := Parse(tt.input); got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestLinesPlainText(t *testing.T) {
	got := Lines(history, Parse("not repro"))
	if !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Lines = %v, want [1]", got)
	}
}

func TestLinesCaseInsensitive(t *testing.T) {
	got := Lines(history, Parse("repro"))
	if len(got) != 3 {
		t.Errorf("matched %d lines, want 3", len(got))
	}
}

func TestLinesSmartCase(t *testing.T) {
	got := Lines(history, Parse("Repro"))
	if len(got) != 3 {
		t.Errorf("matched %d lines, want 3", len(got))
	}
	if got := Lines(history, Parse("REPRO")); got != nil {
		t.Errorf("upper-case pattern matched %v, want none", got)
	}
}

func TestLinesRegex(t *testing.T) {
	got := Lines(history, Parse(`~ - \d{4} repro$`))
	if !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("Lines = %v, want [0 1]", got)
	}
}

func TestLinesInvalidRegex(t *testing.T) {
	if got := Lines(history, Parse("~[unclosed")); got != nil {
		t.Errorf("invalid regex matched %v", got)
	}
}

func TestLinesEmptyPattern(t *testing.T) {
	if got := Lines(history, Query{}); got != nil {
		t.Errorf("empty pattern matched %v", got)
	}
}

func TestFilter(t *testing.T) {
	got := Filter(history, Parse("b77e01d"))
	want := []string{"b77e01d - 88 Repro"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter = %v, want %v", got, want)
	}
}
