package chess

type offset struct {
	file int
	rank int
}

var (
	rookDirs      = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs    = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightOffsets = []offset{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingOffsets   = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func (s Square) shifted(o offset) Square {
	return Square{File: s.File + o.file, Rank: s.Rank + o.rank}
}

// pawnDirection is the rank delta a pawn of the given color advances by.
func pawnDirection(color Color) int {
	if color == White {
		return 1
	}
	return -1
}

// pseudoLegalMoves produces the destinations obeying the piece's geometry and
// board occupancy, without checking the mover's own king safety. Castling is
// not included here; it is validated separately by canCastle.
func (p *Position) pseudoLegalMoves(from Square) []SimpleMove {
	piece := p.PieceAt(from)
	if piece == nil {
		return nil
	}
	var targets []Square
	switch piece.Type {
	case Pawn:
		return p.pseudoPawnMoves(from, piece)
	case Knight:
		targets = p.leapTargets(from, knightOffsets)
	case Bishop:
		targets = p.rayTargets(from, bishopDirs)
	case Rook:
		targets = p.rayTargets(from, rookDirs)
	case Queen:
		targets = p.rayTargets(from, rookDirs)
		targets = append(targets, p.rayTargets(from, bishopDirs)...)
	case King:
		targets = p.leapTargets(from, kingOffsets)
	}
	// Friendly occupancy is rejected once here rather than per piece type.
	moves := make([]SimpleMove, 0, len(targets))
	for _, to := range targets {
		if occupant := p.PieceAt(to); occupant != nil && occupant.Color == piece.Color {
			continue
		}
		moves = append(moves, SimpleMove{From: from, To: to})
	}
	return moves
}

func (p *Position) leapTargets(from Square, offsets []offset) []Square {
	var targets []Square
	for _, o := range offsets {
		to := from.shifted(o)
		if to.Valid() {
			targets = append(targets, to)
		}
	}
	return targets
}

// rayTargets walks each direction square by square, stopping at the first
// obstruction, which is itself included (the central filter decides whether
// it is a capture or a blocked friendly square).
func (p *Position) rayTargets(from Square, dirs []offset) []Square {
	var targets []Square
	for _, dir := range dirs {
		for to := from.shifted(dir); to.Valid(); to = to.shifted(dir) {
			targets = append(targets, to)
			if p.PieceAt(to) != nil {
				break
			}
		}
	}
	return targets
}

func (p *Position) pseudoPawnMoves(from Square, piece *Piece) []SimpleMove {
	var moves []SimpleMove
	dir := pawnDirection(piece.Color)

	one := Square{File: from.File, Rank: from.Rank + dir}
	if one.Valid() && p.PieceAt(one) == nil {
		moves = append(moves, SimpleMove{From: from, To: one})
		two := Square{File: from.File, Rank: from.Rank + 2*dir}
		if !piece.HasMoved && two.Valid() && p.PieceAt(two) == nil {
			moves = append(moves, SimpleMove{From: from, To: two})
		}
	}
	for _, df := range []int{-1, 1} {
		to := Square{File: from.File + df, Rank: from.Rank + dir}
		if !to.Valid() {
			continue
		}
		if occupant := p.PieceAt(to); occupant != nil && occupant.Color != piece.Color {
			moves = append(moves, SimpleMove{From: from, To: to})
		} else if p.enPassantTarget != nil && *p.enPassantTarget == to {
			moves = append(moves, SimpleMove{From: from, To: to})
		}
	}
	return moves
}

// IsSquareAttacked reports whether sq is attacked by any piece of the given
// color. Implemented as a reverse scan from sq: cheaper than running the
// generator for all 16 attackers and equivalent for every piece type.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	for _, dir := range rookDirs {
		for to := sq.shifted(dir); to.Valid(); to = to.shifted(dir) {
			if occupant := p.PieceAt(to); occupant != nil {
				if occupant.Color == by && (occupant.Type == Rook || occupant.Type == Queen) {
					return true
				}
				break
			}
		}
	}
	for _, dir := range bishopDirs {
		for to := sq.shifted(dir); to.Valid(); to = to.shifted(dir) {
			if occupant := p.PieceAt(to); occupant != nil {
				if occupant.Color == by && (occupant.Type == Bishop || occupant.Type == Queen) {
					return true
				}
				break
			}
		}
	}
	for _, o := range knightOffsets {
		to := sq.shifted(o)
		if occupant := p.PieceAt(to); to.Valid() && occupant != nil && occupant.Color == by && occupant.Type == Knight {
			return true
		}
	}
	for _, o := range kingOffsets {
		to := sq.shifted(o)
		if occupant := p.PieceAt(to); to.Valid() && occupant != nil && occupant.Color == by && occupant.Type == King {
			return true
		}
	}
	// A pawn of color `by` attacks sq from one rank toward its own side.
	pawnRank := sq.Rank - pawnDirection(by)
	for _, df := range []int{-1, 1} {
		to := Square{File: sq.File + df, Rank: pawnRank}
		if occupant := p.PieceAt(to); to.Valid() && occupant != nil && occupant.Color == by && occupant.Type == Pawn {
			return true
		}
	}
	return false
}

// IsKingInCheck reports whether the given side's king is currently attacked.
func (p *Position) IsKingInCheck(color Color) bool {
	return p.IsSquareAttacked(p.kingSquare(color), color.Opponent())
}

// canCastle is the dedicated castling eligibility check: king and rook both
// unmoved, the path between them empty, and the king neither in check nor
// crossing or landing on an attacked square. The generic king-safety filter
// is not relied on for castling.
func (p *Position) canCastle(color Color, kingside bool) bool {
	rank := 0
	if color == Black {
		rank = 7
	}
	king := p.PieceAt(Square{File: 4, Rank: rank})
	if king == nil || king.Type != King || king.Color != color || king.HasMoved {
		return false
	}
	rookFile := 0
	if kingside {
		rookFile = 7
	}
	rook := p.PieceAt(Square{File: rookFile, Rank: rank})
	if rook == nil || rook.Type != Rook || rook.Color != color || rook.HasMoved {
		return false
	}
	between := []int{1, 2, 3}
	if kingside {
		between = []int{5, 6}
	}
	for _, file := range between {
		if p.PieceAt(Square{File: file, Rank: rank}) != nil {
			return false
		}
	}
	enemy := color.Opponent()
	kingPath := []int{4, 3, 2}
	if kingside {
		kingPath = []int{4, 5, 6}
	}
	for _, file := range kingPath {
		if p.IsSquareAttacked(Square{File: file, Rank: rank}, enemy) {
			return false
		}
	}
	return true
}

// castleMoves returns the castling king jumps currently available to color.
func (p *Position) castleMoves(color Color) []SimpleMove {
	rank := 0
	if color == Black {
		rank = 7
	}
	from := Square{File: 4, Rank: rank}
	var moves []SimpleMove
	if p.canCastle(color, true) {
		moves = append(moves, SimpleMove{From: from, To: Square{File: 6, Rank: rank}})
	}
	if p.canCastle(color, false) {
		moves = append(moves, SimpleMove{From: from, To: Square{File: 2, Rank: rank}})
	}
	return moves
}

// LegalMovesFrom returns the fully legal moves for the piece on from:
// pseudo-legal geometry plus castling, filtered for own-king safety.
func (p *Position) LegalMovesFrom(from Square) []SimpleMove {
	piece := p.PieceAt(from)
	if piece == nil {
		return nil
	}
	pseudo := p.pseudoLegalMoves(from)
	if piece.Type == King {
		pseudo = append(pseudo, p.castleMoves(piece.Color)...)
	}
	return p.filterLegalMoves(pseudo, piece.Color)
}

// filterLegalMoves keeps the moves that do not leave the mover's own king
// attacked, tested by piece substitution on the live board with full revert.
// En-passant pawn removal and the castling rook hop are not simulated here;
// castling safety is owned by canCastle.
func (p *Position) filterLegalMoves(pseudo []SimpleMove, mover Color) []SimpleMove {
	legal := make([]SimpleMove, 0, len(pseudo))
	for _, move := range pseudo {
		fromPiece := p.PieceAt(move.From)
		toPiece := p.PieceAt(move.To)
		p.setPiece(move.To, fromPiece)
		p.setPiece(move.From, nil)
		if fromPiece.Type == King {
			p.setKingSquare(mover, move.To)
		}
		safe := !p.IsKingInCheck(mover)
		p.setPiece(move.From, fromPiece)
		p.setPiece(move.To, toPiece)
		if fromPiece.Type == King {
			p.setKingSquare(mover, move.From)
		}
		if safe {
			legal = append(legal, move)
		}
	}
	return legal
}

// LegalMoves returns every legal move for the given side.
func (p *Position) LegalMoves(color Color) []SimpleMove {
	var moves []SimpleMove
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			from := Square{File: file, Rank: rank}
			if piece := p.PieceAt(from); piece != nil && piece.Color == color {
				moves = append(moves, p.LegalMovesFrom(from)...)
			}
		}
	}
	return moves
}

func (p *Position) hasLegalMove(color Color) bool {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			from := Square{File: file, Rank: rank}
			if piece := p.PieceAt(from); piece != nil && piece.Color == color {
				if len(p.LegalMovesFrom(from)) > 0 {
					return true
				}
			}
		}
	}
	return false
}

func (p *Position) isLegal(from, to Square) bool {
	for _, move := range p.LegalMovesFrom(from) {
		if move.To == to {
			return true
		}
	}
	return false
}
