package chess_test

import (
	"math/rand"
	"testing"

	"github.com/AndersStabell/anderschess-backend/internal/chess"
)

func TestSelectMoveEmptyList(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, ok := chess.SelectMove(chess.NewGame().Position(), nil, chess.SkillBest, rng); ok {
		t.Fatal("selected a move from an empty list")
	}
}

func TestSelectMoveDeterministicWithSeed(t *testing.T) {
	g := chess.NewGame()
	moves := g.LegalMoves()
	first, _ := chess.SelectMove(g.Position(), moves, chess.SkillRandom, rand.New(rand.NewSource(7)))
	second, _ := chess.SelectMove(g.Position(), moves, chess.SkillRandom, rand.New(rand.NewSource(7)))
	if first != second {
		t.Fatalf("same seed gave different moves: %v vs %v", first, second)
	}
}

func TestSelectMovePrefersCaptures(t *testing.T) {
	// The only capture on the board is the knight taking the pawn on c6.
	g := mustGame(t, "4k3/8/2p5/8/3N4/8/8/7K w - - 0 1")
	moves := g.LegalMoves()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		move, ok := chess.SelectMove(g.Position(), moves, chess.SkillCapture, rng)
		if !ok {
			t.Fatal("no move selected")
		}
		if move.To.String() != "c6" {
			t.Fatalf("capture tier picked %v, want the capture on c6", move)
		}
	}
}

func TestSelectMoveTacticalTakesBiggestPiece(t *testing.T) {
	// Knight on d4 can take either the pawn on c6 or the rook on e6.
	g := mustGame(t, "4k3/8/2p1r3/8/3N4/8/8/7K w - - 0 1")
	moves := g.LegalMoves()
	rng := rand.New(rand.NewSource(1))
	move, ok := chess.SelectMove(g.Position(), moves, chess.SkillTactical, rng)
	if !ok {
		t.Fatal("no move selected")
	}
	if move.To.String() != "e6" {
		t.Fatalf("tactical tier picked %v, want the rook capture on e6", move)
	}
}

func TestSelectMoveBestIsPureAndDeterministic(t *testing.T) {
	g := chess.NewGame()
	moves := g.LegalMoves()
	rng := rand.New(rand.NewSource(1))
	first, _ := chess.SelectMove(g.Position(), moves, chess.SkillBest, rng)
	second, _ := chess.SelectMove(g.Position(), moves, chess.SkillBest, rng)
	if first != second {
		t.Fatalf("best tier is not deterministic: %v vs %v", first, second)
	}
	// Ties break to the first maximum in selection order: the b1 knight's
	// development move to c3 comes before any pawn push of equal score.
	if first.From.String() != "b1" || first.To.String() != "c3" {
		t.Fatalf("best tier picked %v, want b1c3", first)
	}
}

func TestSelectMoveBestPrefersValuableCapture(t *testing.T) {
	g := mustGame(t, "4k3/8/2p1r3/8/3N4/8/8/7K w - - 0 1")
	moves := g.LegalMoves()
	move, _ := chess.SelectMove(g.Position(), moves, chess.SkillBest, rand.New(rand.NewSource(1)))
	if move.To.String() != "e6" {
		t.Fatalf("best tier picked %v, want the rook capture on e6", move)
	}
}
