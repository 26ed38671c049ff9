package draw

import (
	"reflect"
	"testing"
)

func TestTail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"12345", "45"},
		{"07", "07"},
		{"7", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Tail(tt.in); got != tt.want {
			t.Errorf("Tail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTable_Helpers(t *testing.T) {
	table := &Table{Rows: []Row{
		{Date: "03/01/2026", Digits: []string{"1", "2", "3"}, Special: "12345", First: "00011"},
		{Date: "02/01/2026", Digits: []string{"4", "5", "6"}},
		{Date: "01/01/2026", Digits: []string{"7", "8", "9"}, Special: "99998", First: "55501"},
	}}

	if got := table.Head(2); len(got) != 2 {
		t.Errorf("Head(2) len = %d", len(got))
	}
	if got := table.Head(10); len(got) != 3 {
		t.Errorf("Head(10) len = %d", len(got))
	}
	if got := table.Head(-1); len(got) != 3 {
		t.Errorf("Head(-1) len = %d", len(got))
	}
	if got, want := table.SpecialTails(), []string{"45", "98"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SpecialTails() = %v, want %v", got, want)
	}
	if got, want := table.FirstTails(), []string{"11", "01"}; !reflect.DeepEqual(got, want) {
		t.Errorf("FirstTails() = %v, want %v", got, want)
	}
	if got := table.Rows[1].DigitsJoined(); got != "456" {
		t.Errorf("DigitsJoined() = %q", got)
	}

	var nilTable *Table
	if !nilTable.Empty() || nilTable.Head(3) != nil {
		t.Error("nil table should be empty")
	}
}
