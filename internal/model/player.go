package model

import (
	"github.com/AndersStabell/anderschess-backend/internal/chess"
)

type Player struct {
	ID    string
	Color chess.Color
}

// ClientPlayer is the seat information sent to clients. TimeLeft is in
// tenths of a second.
type ClientPlayer struct {
	ID       string      `json:"name"`
	Color    chess.Color `json:"color"`
	TimeLeft int         `json:"timeLeft"`
	IsBot    bool        `json:"isBot,omitempty"`
}
