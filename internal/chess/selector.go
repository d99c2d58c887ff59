package chess

import (
	"fmt"
	"math/rand"
)

// Skill selects one of the tiered move policies.
type Skill int

const (
	// SkillRandom picks uniformly among all legal moves.
	SkillRandom Skill = iota
	// SkillCapture picks uniformly among capturing moves, falling back to
	// all moves when none capture.
	SkillCapture
	// SkillTactical takes the capture of the highest-value piece, falling
	// back to a random move when nothing can be captured.
	SkillTactical
	// SkillBest scores every move by capture value plus center and
	// development bonuses and takes the maximum.
	SkillBest
)

// ParseSkill maps a wire-level skill name to its tier.
func ParseSkill(s string) (Skill, error) {
	switch s {
	case "random":
		return SkillRandom, nil
	case "capture":
		return SkillCapture, nil
	case "tactical":
		return SkillTactical, nil
	case "best":
		return SkillBest, nil
	}
	return 0, fmt.Errorf("unknown skill %q", s)
}

// centerBonus rewards moves into the four central squares.
const centerBonus = 1

// developmentBonus rewards a minor piece's first move off the back rank.
const developmentBonus = 1

// SelectMove picks one move from an already-legal move list. It is a pure
// function of the move list and the board it reads; ties in scored tiers go
// to the first maximum in selection order. The rand source is supplied by
// the caller so tests can seed it.
func SelectMove(pos *Position, moves []SimpleMove, skill Skill, rng *rand.Rand) (SimpleMove, bool) {
	if len(moves) == 0 {
		return SimpleMove{}, false
	}
	switch skill {
	case SkillCapture:
		captures := filterCaptures(pos, moves)
		if len(captures) == 0 {
			captures = moves
		}
		return captures[rng.Intn(len(captures))], true
	case SkillTactical:
		captures := filterCaptures(pos, moves)
		if len(captures) == 0 {
			return moves[rng.Intn(len(moves))], true
		}
		best := captures[0]
		bestValue := captureValue(pos, best)
		for _, move := range captures[1:] {
			if v := captureValue(pos, move); v > bestValue {
				best, bestValue = move, v
			}
		}
		return best, true
	case SkillBest:
		best := moves[0]
		bestScore := moveScore(pos, best)
		for _, move := range moves[1:] {
			if s := moveScore(pos, move); s > bestScore {
				best, bestScore = move, s
			}
		}
		return best, true
	default:
		return moves[rng.Intn(len(moves))], true
	}
}

func filterCaptures(pos *Position, moves []SimpleMove) []SimpleMove {
	var captures []SimpleMove
	for _, move := range moves {
		if isCapture(pos, move) {
			captures = append(captures, move)
		}
	}
	return captures
}

func isCapture(pos *Position, move SimpleMove) bool {
	if pos.PieceAt(move.To) != nil {
		return true
	}
	mover := pos.PieceAt(move.From)
	return mover != nil && mover.Type == Pawn &&
		pos.enPassantTarget != nil && *pos.enPassantTarget == move.To
}

// captureValue is the material value of the piece taken by move, 0 for a
// quiet move. An en-passant capture is always worth a pawn.
func captureValue(pos *Position, move SimpleMove) int {
	if victim := pos.PieceAt(move.To); victim != nil {
		return victim.Type.Value()
	}
	if isCapture(pos, move) {
		return Pawn.Value()
	}
	return 0
}

func moveScore(pos *Position, move SimpleMove) int {
	score := captureValue(pos, move)
	if isCenterSquare(move.To) {
		score += centerBonus
	}
	if mover := pos.PieceAt(move.From); mover != nil && !mover.HasMoved &&
		(mover.Type == Knight || mover.Type == Bishop) {
		score += developmentBonus
	}
	return score
}

func isCenterSquare(sq Square) bool {
	return (sq.File == 3 || sq.File == 4) && (sq.Rank == 3 || sq.Rank == 4)
}
