package chess_test

import (
	"errors"
	"testing"

	"github.com/AndersStabell/anderschess-backend/internal/chess"
)

func TestKnightDisambiguationByFile(t *testing.T) {
	// Knights on c3 and g3 can both reach e4.
	g := mustGame(t, "4k3/8/8/8/8/2N3N1/8/4K3 w - - 0 1")
	move := mustMove(t, g, "c3", "e4")
	if move.Notation != "Nce4" {
		t.Fatalf("notation = %q, want Nce4", move.Notation)
	}
}

func TestKnightDisambiguationByRank(t *testing.T) {
	// Knights on c3 and c5 share a file, so the rank must disambiguate.
	g := mustGame(t, "4k3/8/8/2N5/8/2N5/8/4K3 w - - 0 1")
	move := mustMove(t, g, "c3", "e4")
	if move.Notation != "N3e4" {
		t.Fatalf("notation = %q, want N3e4", move.Notation)
	}
}

func TestNoDisambiguationWhenUnambiguous(t *testing.T) {
	g := chess.NewGame()
	move := mustMove(t, g, "g1", "f3")
	if move.Notation != "Nf3" {
		t.Fatalf("notation = %q, want Nf3", move.Notation)
	}
}

func TestCaptureNotation(t *testing.T) {
	g := mustGame(t, "4k3/8/8/3p4/8/8/3R4/4K3 w - - 0 1")
	move := mustMove(t, g, "d2", "d5")
	if move.Notation != "Rxd5" {
		t.Fatalf("notation = %q, want Rxd5", move.Notation)
	}
}

func TestLongAlgebraic(t *testing.T) {
	g := chess.NewGame()
	move := mustMove(t, g, "e2", "e4")
	if got := move.LongAlgebraic(); got != "e2e4" {
		t.Fatalf("LongAlgebraic = %q, want e2e4", got)
	}

	promo := mustGame(t, "8/P7/8/8/8/6k1/8/7K w - - 0 1")
	record, err := promo.ExecuteMove(mustSquare(t, "a7"), mustSquare(t, "a8"), chess.Knight)
	if err != nil {
		t.Fatalf("ExecuteMove: %v", err)
	}
	if got := record.LongAlgebraic(); got != "a7a8n" {
		t.Fatalf("LongAlgebraic = %q, want a7a8n", got)
	}
}

func TestParseLongMove(t *testing.T) {
	from, to, promotion, err := chess.ParseLongMove("e2e4")
	if err != nil {
		t.Fatalf("ParseLongMove(e2e4): %v", err)
	}
	if from.String() != "e2" || to.String() != "e4" || promotion != "" {
		t.Fatalf("got %s %s %q", from, to, promotion)
	}

	_, to, promotion, err = chess.ParseLongMove("e7e8q")
	if err != nil {
		t.Fatalf("ParseLongMove(e7e8q): %v", err)
	}
	if to.String() != "e8" || promotion != chess.Queen {
		t.Fatalf("got %s %q", to, promotion)
	}

	for _, bad := range []string{"", "e2", "e2e9", "e2e4x", "e7e8k", "e7e8p"} {
		if _, _, _, err := chess.ParseLongMove(bad); !errors.Is(err, chess.ErrInvalidSquare) {
			t.Errorf("ParseLongMove(%q) = %v, want ErrInvalidSquare", bad, err)
		}
	}
}
