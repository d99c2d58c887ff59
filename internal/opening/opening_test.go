package opening_test

import (
	"testing"

	"github.com/AndersStabell/anderschess-backend/internal/opening"
	"github.com/google/go-cmp/cmp"
)

func TestLookupDeepestPrefix(t *testing.T) {
	book := opening.NewBook()
	tests := []struct {
		name  string
		moves []string
		want  *opening.Entry
	}{
		{
			name:  "no moves yet",
			moves: nil,
			want:  nil,
		},
		{
			name:  "unknown line",
			moves: []string{"a4"},
			want:  nil,
		},
		{
			name:  "single move match",
			moves: []string{"e4"},
			want:  &opening.Entry{ECO: "B00", Name: "King's Pawn Opening", Moves: []string{"e4"}},
		},
		{
			name:  "deepest entry wins",
			moves: []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6"},
			want:  &opening.Entry{ECO: "C60", Name: "Ruy Lopez", Moves: []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}},
		},
		{
			name:  "sticks to last matched line after divergence",
			moves: []string{"e4", "c5", "Nf3"},
			want:  &opening.Entry{ECO: "B20", Name: "Sicilian Defense", Moves: []string{"e4", "c5"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := book.Lookup(tt.moves)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lookup(%v) (-want +got):\n%s", tt.moves, diff)
			}
		})
	}
}

func TestLookupCustomEntries(t *testing.T) {
	book := opening.NewBookWithEntries([]opening.Entry{
		{ECO: "A00", Name: "Test Line", Moves: []string{"h4"}},
	})
	if got := book.Lookup([]string{"h4", "h5"}); got == nil || got.Name != "Test Line" {
		t.Fatalf("Lookup = %+v, want Test Line", got)
	}
}
