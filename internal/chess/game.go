package chess

// Status tags the game-state machine.
type Status string

const (
	StatusActive    Status = "active"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
	StatusDraw      Status = "draw"
	StatusResigned  Status = "resigned"
)

// State is the machine's current node. Color carries the tag's payload: the
// checked side for StatusCheck, the winner for StatusCheckmate and
// StatusResigned, empty otherwise. Reason names the draw rule that fired.
type State struct {
	Status Status `json:"status"`
	Color  Color  `json:"color,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Terminal reports whether no further moves are accepted.
func (s State) Terminal() bool {
	switch s.Status {
	case StatusCheckmate, StatusStalemate, StatusDraw, StatusResigned:
		return true
	}
	return false
}

// Move is the historical record of one executed half-move. Once appended to
// the game it is never mutated.
type Move struct {
	From        Square    `json:"from"`
	To          Square    `json:"to"`
	Piece       Piece     `json:"piece"`
	Captured    *Piece    `json:"captured,omitempty"`
	IsEnPassant bool      `json:"isEnPassant,omitempty"`
	IsCastling  bool      `json:"isCastling,omitempty"`
	Promotion   PieceType `json:"promotion,omitempty"`
	IsCheck     bool      `json:"isCheck,omitempty"`
	IsCheckmate bool      `json:"isCheckmate,omitempty"`
	Notation    string    `json:"notation"`
}

// Game owns a Position across a whole game: the executor, the state machine
// and the append-only histories. It is synchronous and unsynchronized; a
// session layer serializes access (one owner, clones for background work).
type Game struct {
	position        *Position
	state           State
	moveHistory     []Move
	positionHistory []string
	captured        []Piece
}

// NewGame starts from the standard initial position.
func NewGame() *Game {
	g := &Game{
		position: newStartingPosition(),
		state:    State{Status: StatusActive},
	}
	g.positionHistory = append(g.positionHistory, g.position.FEN())
	return g
}

// NewGameFromFEN starts from an arbitrary position.
func NewGameFromFEN(fen string) (*Game, error) {
	pos, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{position: pos}
	g.recomputeState()
	g.positionHistory = append(g.positionHistory, pos.FEN())
	return g, nil
}

// Position exposes the live position for reads. Callers must not mutate it;
// background evaluation takes Position().Clone().
func (g *Game) Position() *Position {
	return g.position
}

func (g *Game) State() State {
	return g.state
}

// MoveHistory returns the executed moves, oldest first.
func (g *Game) MoveHistory() []Move {
	history := make([]Move, len(g.moveHistory))
	copy(history, g.moveHistory)
	return history
}

// Notations returns the SAN string of every executed move, oldest first.
func (g *Game) Notations() []string {
	notations := make([]string, len(g.moveHistory))
	for i, move := range g.moveHistory {
		notations[i] = move.Notation
	}
	return notations
}

// CapturedPieces returns every piece removed from the board, in capture order.
func (g *Game) CapturedPieces() []Piece {
	captured := make([]Piece, len(g.captured))
	copy(captured, g.captured)
	return captured
}

func (g *Game) FEN() string {
	return g.position.FEN()
}

// LegalMoves returns every legal move for the side to move, or nothing once
// the game has resolved.
func (g *Game) LegalMoves() []SimpleMove {
	if g.state.Terminal() {
		return nil
	}
	return g.position.LegalMoves(g.position.sideToMove)
}

// LegalMovesFrom returns the legal moves for the piece on from, restricted to
// the side to move.
func (g *Game) LegalMovesFrom(from Square) []SimpleMove {
	if g.state.Terminal() {
		return nil
	}
	piece := g.position.PieceAt(from)
	if piece == nil || piece.Color != g.position.sideToMove {
		return nil
	}
	return g.position.LegalMovesFrom(from)
}

// Result renders the game outcome in result-code form: "1-0", "0-1",
// "1/2-1/2", or "*" while still in progress.
func (g *Game) Result() string {
	switch g.state.Status {
	case StatusCheckmate, StatusResigned:
		if g.state.Color == White {
			return "1-0"
		}
		return "0-1"
	case StatusStalemate, StatusDraw:
		return "1/2-1/2"
	}
	return "*"
}

// ExecuteMove validates and applies one move for the side to move. promotion
// selects the piece a promoting pawn becomes; empty means queen. On failure
// the game is unchanged and the error is either ErrGameOver or an
// *IllegalMoveError.
func (g *Game) ExecuteMove(from, to Square, promotion PieceType) (*Move, error) {
	if g.state.Terminal() {
		return nil, ErrGameOver
	}
	if !from.Valid() || !to.Valid() {
		return nil, illegalMove(from, to, "square out of bounds")
	}
	pos := g.position
	piece := pos.PieceAt(from)
	if piece == nil {
		return nil, illegalMove(from, to, "no piece at from square")
	}
	if piece.Color != pos.sideToMove {
		return nil, illegalMove(from, to, "not your turn")
	}
	isPromotion := piece.Type == Pawn && to.Rank == promotionRank(piece.Color)
	if promotion != "" {
		if !isPromotion {
			return nil, illegalMove(from, to, "promotion not available")
		}
		switch promotion {
		case Queen, Rook, Bishop, Knight:
		default:
			return nil, illegalMove(from, to, "malformed promotion piece")
		}
	}
	if !pos.isLegal(from, to) {
		return nil, illegalMove(from, to, "not legal")
	}

	record := Move{From: from, To: to, Piece: *piece}
	if isPromotion {
		record.Promotion = promotion
		if record.Promotion == "" {
			record.Promotion = Queen
		}
	}

	// The SAN body needs the pre-move board; the check suffix is appended
	// after the new state is known.
	sanBody := pos.sanBody(from, to, record.Promotion)

	// 1. Capture bookkeeping.
	if target := pos.PieceAt(to); target != nil {
		captured := *target
		record.Captured = &captured
	}
	// 2. En passant removes the pawn behind the target square.
	if piece.Type == Pawn && pos.enPassantTarget != nil && *pos.enPassantTarget == to {
		record.IsEnPassant = true
		victimSquare := Square{File: to.File, Rank: to.Rank - pawnDirection(piece.Color)}
		victim := *pos.PieceAt(victimSquare)
		record.Captured = &victim
		pos.setPiece(victimSquare, nil)
	}
	// 3. Relocate.
	pos.setPiece(from, nil)
	pos.setPiece(to, piece)
	piece.HasMoved = true
	if piece.Type == King {
		pos.setKingSquare(piece.Color, to)
	}
	// 4. Promotion.
	if isPromotion {
		piece.Type = record.Promotion
	}
	// 5. Castling relocates the rook beside the king.
	if piece.Type == King && abs(to.File-from.File) == 2 {
		record.IsCastling = true
		rookFrom := Square{File: 0, Rank: from.Rank}
		rookTo := Square{File: 3, Rank: from.Rank}
		if to.File == 6 {
			rookFrom = Square{File: 7, Rank: from.Rank}
			rookTo = Square{File: 5, Rank: from.Rank}
		}
		rook := pos.PieceAt(rookFrom)
		pos.setPiece(rookFrom, nil)
		pos.setPiece(rookTo, rook)
		rook.HasMoved = true
	}
	// 6. Castling rights follow HasMoved, set above for king and rook alike.
	// 7. En-passant target: only a double pawn step arms it.
	pos.enPassantTarget = nil
	if piece.Type == Pawn && abs(to.Rank-from.Rank) == 2 {
		skipped := Square{File: from.File, Rank: (from.Rank + to.Rank) / 2}
		pos.enPassantTarget = &skipped
	}
	// 8. Halfmove clock.
	if record.Piece.Type == Pawn || record.Captured != nil {
		pos.halfmoveClock = 0
	} else {
		pos.halfmoveClock++
	}
	// 9. Side to move flips.
	pos.ply++
	pos.sideToMove = pos.sideToMove.Opponent()
	// 10. Game state against the new side to move.
	g.recomputeState()
	// 11. Finish and append the record.
	switch g.state.Status {
	case StatusCheckmate:
		record.IsCheck = true
		record.IsCheckmate = true
		sanBody += "#"
	case StatusCheck:
		record.IsCheck = true
		sanBody += "+"
	}
	record.Notation = sanBody
	g.moveHistory = append(g.moveHistory, record)
	if record.Captured != nil {
		g.captured = append(g.captured, *record.Captured)
	}
	// 12. Position history for repetition counting.
	g.positionHistory = append(g.positionHistory, pos.FEN())

	return &record, nil
}

// Resign ends the game in favor of the resigner's opponent.
func (g *Game) Resign(loser Color) error {
	if g.state.Terminal() {
		return ErrGameOver
	}
	g.state = State{Status: StatusResigned, Color: loser.Opponent()}
	return nil
}

// AgreeDraw ends the game as a draw by agreement.
func (g *Game) AgreeDraw() error {
	if g.state.Terminal() {
		return ErrGameOver
	}
	g.state = State{Status: StatusDraw, Reason: "agreement"}
	return nil
}

// recomputeState derives the machine node for the current side to move.
// Mate and stalemate are decided before the draw rules, so a mating move
// that also reaches the clocks still mates.
func (g *Game) recomputeState() {
	side := g.position.sideToMove
	inCheck := g.position.IsKingInCheck(side)
	if !g.position.hasLegalMove(side) {
		if inCheck {
			g.state = State{Status: StatusCheckmate, Color: side.Opponent()}
		} else {
			g.state = State{Status: StatusStalemate}
		}
		return
	}
	switch {
	case g.position.halfmoveClock >= 100:
		g.state = State{Status: StatusDraw, Reason: "fifty-move rule"}
	case g.repetitionCount() >= 3:
		g.state = State{Status: StatusDraw, Reason: "threefold repetition"}
	case g.position.insufficientMaterial():
		g.state = State{Status: StatusDraw, Reason: "insufficient material"}
	case inCheck:
		g.state = State{Status: StatusCheck, Color: side}
	default:
		g.state = State{Status: StatusActive}
	}
}

// repetitionCount counts how often the current position has occurred,
// including now. Snapshots are full FEN strings but only placement, side,
// castling and en passant are compared; the clock fields advance every move
// and would make repetition unreachable.
func (g *Game) repetitionCount() int {
	current := repetitionKey(g.position.FEN())
	count := 1
	for _, fen := range g.positionHistory {
		if repetitionKey(fen) == current {
			count++
		}
	}
	return count
}

// insufficientMaterial covers king versus king, with at most one minor piece
// on either side.
func (p *Position) insufficientMaterial() bool {
	minors := 0
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := p.board[rank][file]
			if piece == nil || piece.Type == King {
				continue
			}
			if piece.Type != Knight && piece.Type != Bishop {
				return false
			}
			minors++
			if minors > 1 {
				return false
			}
		}
	}
	return true
}

func promotionRank(color Color) int {
	if color == White {
		return 7
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
