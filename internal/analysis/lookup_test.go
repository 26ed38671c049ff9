package analysis

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pfrederiksen/xoso-stats/internal/draw"
)

func TestLookup(t *testing.T) {
	table := tableOf(
		draw.Row{Date: "17/10/2024", Special: "12345", First: "67812"},
		draw.Row{Date: "16/10/2024", Special: "99999", First: "34000"},
		draw.Row{Date: "15/10/2024"},
	)

	tests := []struct {
		pair string
		want []Match
	}{
		{
			pair: "12",
			want: []Match{
				{Date: "17/10/2024", Source: CompareSpecial, Number: "12345"},
				{Date: "17/10/2024", Source: CompareFirst, Number: "67812"},
			},
		},
		{
			pair: "34",
			want: []Match{
				{Date: "17/10/2024", Source: CompareSpecial, Number: "12345"},
				{Date: "16/10/2024", Source: CompareFirst, Number: "34000"},
			},
		},
		{
			pair: "57",
			want: []Match{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.pair, func(t *testing.T) {
			got, err := Lookup(table, tt.pair)
			if err != nil {
				t.Fatalf("Lookup() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lookup(%q) = %+v, want %+v", tt.pair, got, tt.want)
			}
		})
	}
}

func TestLookup_InvalidPair(t *testing.T) {
	for _, pair := range []string{"", "1", "123", "ab"} {
		if _, err := Lookup(nil, pair); !errors.Is(err, ErrInvalidPair) {
			t.Errorf("Lookup(%q) error = %v, want ErrInvalidPair", pair, err)
		}
	}
}
