package chess

// Position is the full rules-level description of a game in progress: the
// board plus the bookkeeping fields every rule beyond raw geometry needs.
// All mutation goes through the executor; readers may hold a Clone.
type Position struct {
	board           [8][8]*Piece
	sideToMove      Color
	enPassantTarget *Square
	whiteKing       Square
	blackKing       Square
	halfmoveClock   int
	ply             int
}

func newStartingPosition() *Position {
	pos := &Position{
		sideToMove: White,
		whiteKing:  Square{File: 4, Rank: 0},
		blackKing:  Square{File: 4, Rank: 7},
	}
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, pt := range backRank {
		pos.board[0][file] = &Piece{Type: pt, Color: White}
		pos.board[7][file] = &Piece{Type: pt, Color: Black}
	}
	for file := 0; file < 8; file++ {
		pos.board[1][file] = &Piece{Type: Pawn, Color: White}
		pos.board[6][file] = &Piece{Type: Pawn, Color: Black}
	}
	return pos
}

// PieceAt returns the occupant of sq, or nil. The caller must not mutate it.
func (p *Position) PieceAt(sq Square) *Piece {
	if !sq.Valid() {
		return nil
	}
	return p.board[sq.Rank][sq.File]
}

func (p *Position) SideToMove() Color {
	return p.sideToMove
}

// EnPassantTarget returns the square a pawn skipped on the immediately
// preceding double-step move, or nil.
func (p *Position) EnPassantTarget() *Square {
	if p.enPassantTarget == nil {
		return nil
	}
	sq := *p.enPassantTarget
	return &sq
}

func (p *Position) HalfmoveClock() int {
	return p.halfmoveClock
}

// FullmoveNumber is derived from the executed half-move count.
func (p *Position) FullmoveNumber() int {
	return p.ply/2 + 1
}

func (p *Position) kingSquare(color Color) Square {
	if color == White {
		return p.whiteKing
	}
	return p.blackKing
}

func (p *Position) setKingSquare(color Color, sq Square) {
	if color == White {
		p.whiteKing = sq
	} else {
		p.blackKing = sq
	}
}

func (p *Position) setPiece(sq Square, piece *Piece) {
	p.board[sq.Rank][sq.File] = piece
}

// Clone returns a deep copy. Background evaluation (the selector, a future
// search) works on clones so the authoritative Position is only ever mutated
// by the move-application path.
func (p *Position) Clone() *Position {
	c := &Position{
		sideToMove:    p.sideToMove,
		whiteKing:     p.whiteKing,
		blackKing:     p.blackKing,
		halfmoveClock: p.halfmoveClock,
		ply:           p.ply,
	}
	if p.enPassantTarget != nil {
		sq := *p.enPassantTarget
		c.enPassantTarget = &sq
	}
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if piece := p.board[rank][file]; piece != nil {
				cp := *piece
				c.board[rank][file] = &cp
			}
		}
	}
	return c
}
