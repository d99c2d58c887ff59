package model

import (
	"github.com/AndersStabell/anderschess-backend/internal/chess"
	"github.com/AndersStabell/anderschess-backend/internal/opening"
	"golang.org/x/exp/slices"
)

// GameState is the snapshot broadcast to clients after every change. Board
// is indexed [rank][file] with rank 0 = rank 1; empty squares are null.
type GameState struct {
	Board          [][]*chess.Piece  `json:"board"`
	FEN            string            `json:"fen"`
	ToMove         chess.Color       `json:"toMove"`
	Status         chess.State       `json:"status"`
	Result         string            `json:"result"`
	IsCheck        bool              `json:"isCheck"`
	MoveHistory    []chess.Move      `json:"moveHistory"`
	CapturedPieces CapturedPieces    `json:"capturedPieces"`
	LastMove       *chess.SimpleMove `json:"lastMove"`
	Opening        *opening.Entry    `json:"opening"`
	DrawOfferBy    chess.Color       `json:"drawOfferBy,omitempty"`
	Players        Players           `json:"players"`
}

// CapturedPieces groups captures by the color that lost them, most valuable
// first for display.
type CapturedPieces struct {
	White []chess.Piece `json:"white"`
	Black []chess.Piece `json:"black"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func capturedByColor(all []chess.Piece) CapturedPieces {
	captured := CapturedPieces{
		White: make([]chess.Piece, 0),
		Black: make([]chess.Piece, 0),
	}
	for _, piece := range all {
		if piece.Color == chess.White {
			captured.White = append(captured.White, piece)
		} else {
			captured.Black = append(captured.Black, piece)
		}
	}
	byValue := func(a, b chess.Piece) int {
		return b.Type.Value() - a.Type.Value()
	}
	slices.SortStableFunc(captured.White, byValue)
	slices.SortStableFunc(captured.Black, byValue)
	return captured
}

func boardView(pos *chess.Position) [][]*chess.Piece {
	board := make([][]*chess.Piece, 8)
	for rank := 0; rank < 8; rank++ {
		board[rank] = make([]*chess.Piece, 8)
		for file := 0; file < 8; file++ {
			if piece := pos.PieceAt(chess.Square{File: file, Rank: rank}); piece != nil {
				view := *piece
				board[rank][file] = &view
			}
		}
	}
	return board
}
