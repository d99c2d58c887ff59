package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// FEN renders the position as a standard six-field FEN string. The placement
// field runs from rank 8 down to rank 1. This string is also the key the
// repetition rule is built on, so it must describe the position fields
// exactly.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.board[rank][file]
			if piece == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := piece.Type.fenLetter()
			if piece.Color == White {
				letter -= 'a' - 'A'
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	rights := ""
	if p.castlingRight(White, true) {
		rights += "K"
	}
	if p.castlingRight(White, false) {
		rights += "Q"
	}
	if p.castlingRight(Black, true) {
		rights += "k"
	}
	if p.castlingRight(Black, false) {
		rights += "q"
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)

	sb.WriteByte(' ')
	if p.enPassantTarget != nil {
		sb.WriteString(p.enPassantTarget.String())
	} else {
		sb.WriteByte('-')
	}

	fmt.Fprintf(&sb, " %d %d", p.halfmoveClock, p.FullmoveNumber())
	return sb.String()
}

// castlingRight is the FEN eligibility flag: king and corner rook both on
// their original squares and never moved. Path and check conditions belong
// to canCastle, not to the rights field. A rook captured on its home square
// drops the right because nothing qualifying stands there anymore.
func (p *Position) castlingRight(color Color, kingside bool) bool {
	rank := 0
	if color == Black {
		rank = 7
	}
	king := p.board[rank][4]
	if king == nil || king.Type != King || king.Color != color || king.HasMoved {
		return false
	}
	rookFile := 0
	if kingside {
		rookFile = 7
	}
	rook := p.board[rank][rookFile]
	return rook != nil && rook.Type == Rook && rook.Color == color && !rook.HasMoved
}

// ParseFEN is the inverse of FEN. HasMoved flags are reconstructed from what
// the string can prove: castling letters clear the relevant king and rook,
// pawns off their home rank are marked moved (this drives the double-step
// rule), everything else is left unmoved, which no rule observes.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("%w: expected 6 fields, got %d", ErrInvalidFEN, len(fields))
	}

	pos := &Position{}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: expected 8 ranks in placement", ErrInvalidFEN)
	}
	whiteKings, blackKings := 0, 0
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			if file > 7 {
				return nil, fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, rank+1)
			}
			color := Black
			lower := c
			if c >= 'A' && c <= 'Z' {
				color = White
				lower = c + 'a' - 'A'
			}
			pt, ok := pieceTypeFromFEN(lower)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, string(c))
			}
			piece := &Piece{Type: pt, Color: color}
			sq := Square{File: file, Rank: rank}
			switch pt {
			case King:
				pos.setKingSquare(color, sq)
				if color == White {
					whiteKings++
				} else {
					blackKings++
				}
				piece.HasMoved = true
			case Rook:
				piece.HasMoved = true
			case Pawn:
				homeRank := 1
				if color == Black {
					homeRank = 6
				}
				piece.HasMoved = rank != homeRank
			}
			pos.setPiece(sq, piece)
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, rank+1, file)
		}
	}
	if whiteKings != 1 || blackKings != 1 {
		return nil, fmt.Errorf("%w: need exactly one king per side", ErrInvalidFEN)
	}

	switch fields[1] {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return nil, fmt.Errorf("%w: bad side to move %q", ErrInvalidFEN, fields[1])
	}

	if fields[2] != "-" {
		for j := 0; j < len(fields[2]); j++ {
			var color Color
			var rookFile int
			switch fields[2][j] {
			case 'K':
				color, rookFile = White, 7
			case 'Q':
				color, rookFile = White, 0
			case 'k':
				color, rookFile = Black, 7
			case 'q':
				color, rookFile = Black, 0
			default:
				return nil, fmt.Errorf("%w: bad castling field %q", ErrInvalidFEN, fields[2])
			}
			rank := 0
			if color == Black {
				rank = 7
			}
			king := pos.board[rank][4]
			rook := pos.board[rank][rookFile]
			if king == nil || king.Type != King || king.Color != color ||
				rook == nil || rook.Type != Rook || rook.Color != color {
				return nil, fmt.Errorf("%w: castling right %q without pieces in place", ErrInvalidFEN, string(fields[2][j]))
			}
			king.HasMoved = false
			rook.HasMoved = false
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: bad en passant square %q", ErrInvalidFEN, fields[3])
		}
		pos.enPassantTarget = &sq
	}

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("%w: bad halfmove clock %q", ErrInvalidFEN, fields[4])
	}
	pos.halfmoveClock = halfmove

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("%w: bad fullmove number %q", ErrInvalidFEN, fields[5])
	}
	pos.ply = (fullmove - 1) * 2
	if pos.sideToMove == Black {
		pos.ply++
	}

	return pos, nil
}

// repetitionKey reduces a FEN snapshot to the fields repetition compares:
// placement, side to move, castling rights and en passant target.
func repetitionKey(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return fen
	}
	return strings.Join(fields[:4], " ")
}
