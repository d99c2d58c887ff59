package chess_test

import (
	"testing"

	"github.com/AndersStabell/anderschess-backend/internal/chess"
	"github.com/google/go-cmp/cmp"
)

func TestInitialPositionHasTwentyMoves(t *testing.T) {
	g := chess.NewGame()
	if got := len(g.LegalMoves()); got != 20 {
		t.Fatalf("legal moves from the initial position = %d, want 20", got)
	}
}

func TestLegalMovesIdempotent(t *testing.T) {
	g := chess.NewGame()
	first := g.LegalMoves()
	second := g.LegalMoves()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated LegalMoves calls differ (-first +second):\n%s", diff)
	}
}

func TestLegalMovesFromRespectsSideToMove(t *testing.T) {
	g := chess.NewGame()
	if moves := g.LegalMovesFrom(mustSquare(t, "e7")); moves != nil {
		t.Fatalf("black pawn has moves on white's turn: %v", moves)
	}
	if moves := g.LegalMovesFrom(mustSquare(t, "e3")); moves != nil {
		t.Fatalf("empty square has moves: %v", moves)
	}
}

func TestPieceGeometry(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from string
		want []string
	}{
		{
			name: "knight leaps over blockers",
			fen:  "4k3/8/8/8/8/8/2PPP3/3NK3 w - - 0 1",
			from: "d1",
			want: []string{"b2", "c3", "e3", "f2"},
		},
		{
			name: "bishop stops at first obstruction",
			fen:  "4k3/8/8/6p1/8/4B3/8/4K3 w - - 0 1",
			from: "e3",
			want: []string{"d4", "c5", "b6", "a7", "f4", "g5", "d2", "c1", "f2", "g1"},
		},
		{
			name: "rook cannot pass friendly piece",
			fen:  "4k3/8/8/8/4P3/8/8/R3K3 w Q - 0 1",
			from: "a1",
			want: []string{"b1", "c1", "d1", "a2", "a3", "a4", "a5", "a6", "a7", "a8"},
		},
		{
			name: "pawn blocked on both steps",
			fen:  "4k3/8/8/8/4p3/8/4P3/4K3 w - - 0 1",
			from: "e2",
			want: []string{"e3"},
		},
		{
			name: "pawn double step from home rank",
			fen:  "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
			from: "e2",
			want: []string{"e3", "e4"},
		},
		{
			name: "pawn captures diagonally only",
			fen:  "4k3/8/8/8/8/3p1p2/4P3/4K3 w - - 0 1",
			from: "e2",
			want: []string{"e3", "e4", "d3", "f3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, tt.fen)
			moves := g.LegalMovesFrom(mustSquare(t, tt.from))
			got := make(map[string]bool)
			for _, m := range moves {
				got[m.To.String()] = true
			}
			want := make(map[string]bool)
			for _, s := range tt.want {
				want[s] = true
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("destinations from %s (-want +got):\n%s", tt.from, diff)
			}
		})
	}
}

func TestSquareAttacked(t *testing.T) {
	g := mustGame(t, "4k3/8/8/8/8/5r2/8/4K2R w K - 0 1")
	pos := g.Position()
	if !pos.IsSquareAttacked(mustSquare(t, "f1"), chess.Black) {
		t.Fatal("f1 should be attacked by the rook on f3")
	}
	if pos.IsSquareAttacked(mustSquare(t, "g1"), chess.Black) {
		t.Fatal("g1 is not attacked by anything")
	}
	if !pos.IsSquareAttacked(mustSquare(t, "h8"), chess.White) {
		t.Fatal("h8 should be attacked by the rook on h1 along the open file")
	}
}

func TestCastlingMoves(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		kingside  bool
		queenside bool
	}{
		{
			name:      "both sides clear",
			fen:       "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			kingside:  true,
			queenside: true,
		},
		{
			name:      "kingside transit square attacked",
			fen:       "4k3/8/8/8/8/5r2/8/R3K2R w KQ - 0 1",
			kingside:  false,
			queenside: true,
		},
		{
			name:      "king in check cannot castle",
			fen:       "4k3/8/8/8/8/4r3/8/R3K2R w KQ - 0 1",
			kingside:  false,
			queenside: false,
		},
		{
			name:      "blocked queenside",
			fen:       "4k3/8/8/8/8/8/8/RN2K2R w KQ - 0 1",
			kingside:  true,
			queenside: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, tt.fen)
			moves := g.LegalMovesFrom(mustSquare(t, "e1"))
			hasKingside, hasQueenside := false, false
			for _, m := range moves {
				switch m.To.String() {
				case "g1":
					hasKingside = true
				case "c1":
					hasQueenside = true
				}
			}
			if hasKingside != tt.kingside {
				t.Errorf("kingside castle available = %v, want %v", hasKingside, tt.kingside)
			}
			if hasQueenside != tt.queenside {
				t.Errorf("queenside castle available = %v, want %v", hasQueenside, tt.queenside)
			}
		})
	}
}
