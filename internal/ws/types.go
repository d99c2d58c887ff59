package ws

import (
	"encoding/json"
)

// MessageType enumerates the kinds of websocket messages the system handles.
type MessageType string

const (
	MessageTypeMove         MessageType = "move"
	MessageTypeGameState    MessageType = "gameState"
	MessageTypeResign       MessageType = "resign"
	MessageTypeDrawOffer    MessageType = "drawOffer"
	MessageTypeDrawResponse MessageType = "drawResponse"
	MessageTypeError        MessageType = "error"
)

// Message is the websocket envelope.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload carries a move in the long-algebraic boundary format:
// two-character origin, destination, optional promotion letter ("e7e8q").
type MovePayload struct {
	Move string `json:"move"`
}

// DrawResponsePayload answers a pending draw offer.
type DrawResponsePayload struct {
	Accept bool `json:"accept"`
}
