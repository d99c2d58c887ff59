package chess_test

import (
	"errors"
	"testing"

	"github.com/AndersStabell/anderschess-backend/internal/chess"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func mustGame(t *testing.T, fen string) *chess.Game {
	t.Helper()
	g, err := chess.NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameFromFEN(%q): %v", fen, err)
	}
	return g
}

func mustSquare(t *testing.T, s string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return sq
}

func mustMove(t *testing.T, g *chess.Game, from, to string) *chess.Move {
	t.Helper()
	move, err := g.ExecuteMove(mustSquare(t, from), mustSquare(t, to), "")
	if err != nil {
		t.Fatalf("ExecuteMove(%s%s): %v", from, to, err)
	}
	return move
}

func TestInitialPositionFEN(t *testing.T) {
	g := chess.NewGame()
	if got := g.FEN(); got != startFEN {
		t.Fatalf("initial FEN = %q, want %q", got, startFEN)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		startFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
		"4k2r/8/8/8/8/8/8/4K3 b k - 3 40",
		"8/P7/8/8/8/8/k6K/8 w - - 12 60",
	}
	for _, fen := range fens {
		pos, err := chess.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := pos.FEN(); got != fen {
			t.Errorf("round trip: got %q, want %q", got, fen)
		}
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KXkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0",
		"8/8/8/8/8/8/8/8 w - - 0 1",
	}
	for _, fen := range bad {
		if _, err := chess.ParseFEN(fen); !errors.Is(err, chess.ErrInvalidFEN) {
			t.Errorf("ParseFEN(%q) = %v, want ErrInvalidFEN", fen, err)
		}
	}
}

func TestParseSquare(t *testing.T) {
	sq, err := chess.ParseSquare("e4")
	if err != nil {
		t.Fatalf("ParseSquare(e4): %v", err)
	}
	if sq.File != 4 || sq.Rank != 3 {
		t.Fatalf("e4 = %+v, want file 4 rank 3", sq)
	}
	if got := sq.String(); got != "e4" {
		t.Fatalf("String() = %q, want e4", got)
	}
	for _, bad := range []string{"", "e", "e9", "i4", "e44"} {
		if _, err := chess.ParseSquare(bad); !errors.Is(err, chess.ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q) = %v, want ErrInvalidSquare", bad, err)
		}
	}
}

func TestEnPassantFieldTracksDoubleStep(t *testing.T) {
	g := chess.NewGame()
	mustMove(t, g, "e2", "e4")
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	if got := g.FEN(); got != want {
		t.Fatalf("after e4: %q, want %q", got, want)
	}
	mustMove(t, g, "g8", "f6")
	// A non-double-step move clears the target.
	if target := g.Position().EnPassantTarget(); target != nil {
		t.Fatalf("en passant target = %v after knight move, want nil", target)
	}
}
