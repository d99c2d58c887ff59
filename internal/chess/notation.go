package chess

import (
	"fmt"
	"strings"
)

// sanBody builds the algebraic notation for a move about to be played on this
// position, everything except the check or mate suffix, which only the
// post-move state can decide.
func (p *Position) sanBody(from, to Square, promotion PieceType) string {
	piece := p.PieceAt(from)
	if piece == nil {
		return ""
	}
	if piece.Type == King && abs(to.File-from.File) == 2 {
		if to.File == 6 {
			return "O-O"
		}
		return "O-O-O"
	}

	isCapture := p.PieceAt(to) != nil
	if piece.Type == Pawn && p.enPassantTarget != nil && *p.enPassantTarget == to {
		isCapture = true
	}

	var sb strings.Builder
	if piece.Type == Pawn {
		if isCapture {
			sb.WriteString(from.fileLetter())
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if promotion != "" {
			sb.WriteByte('=')
			sb.WriteString(promotion.sanLetter())
		}
		return sb.String()
	}

	sb.WriteString(piece.Type.sanLetter())
	sb.WriteString(p.disambiguation(from, to, piece))
	if isCapture {
		sb.WriteByte('x')
	}
	sb.WriteString(to.String())
	return sb.String()
}

// disambiguation emits the origin qualifier required when another like piece
// could legally reach the same destination: file letter if that settles it,
// else rank digit, else the full origin square.
func (p *Position) disambiguation(from, to Square, piece *Piece) string {
	sameFile, sameRank, rivals := false, false, false
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			other := Square{File: file, Rank: rank}
			if other == from {
				continue
			}
			occupant := p.PieceAt(other)
			if occupant == nil || occupant.Type != piece.Type || occupant.Color != piece.Color {
				continue
			}
			for _, move := range p.LegalMovesFrom(other) {
				if move.To != to {
					continue
				}
				rivals = true
				if other.File == from.File {
					sameFile = true
				}
				if other.Rank == from.Rank {
					sameRank = true
				}
				break
			}
		}
	}
	switch {
	case !rivals:
		return ""
	case !sameFile:
		return from.fileLetter()
	case !sameRank:
		return from.rankDigit()
	default:
		return from.String()
	}
}

// LongAlgebraic renders the move in the origin-destination form exchanged
// with external engines and move-entry layers: "e2e4", "e7e8q".
func (m Move) LongAlgebraic() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != "" {
		s += string(m.Promotion.fenLetter())
	}
	return s
}

// ParseLongMove parses the external move format: two-character origin,
// two-character destination, optional promotion letter.
func ParseLongMove(s string) (from, to Square, promotion PieceType, err error) {
	if len(s) != 4 && len(s) != 5 {
		err = fmt.Errorf("%w: malformed move %q", ErrInvalidSquare, s)
		return
	}
	if from, err = ParseSquare(s[:2]); err != nil {
		return
	}
	if to, err = ParseSquare(s[2:4]); err != nil {
		return
	}
	if len(s) == 5 {
		pt, ok := pieceTypeFromFEN(s[4])
		if !ok || pt == King || pt == Pawn {
			err = fmt.Errorf("%w: malformed promotion in %q", ErrInvalidSquare, s)
			return
		}
		promotion = pt
	}
	return
}
