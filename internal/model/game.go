package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/AndersStabell/anderschess-backend/internal/chess"
	"github.com/AndersStabell/anderschess-backend/internal/opening"
	"github.com/AndersStabell/anderschess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

const initialClockTime = 600 * time.Second

// GameConnections holds the live connections for a single game.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// BotSeat marks one color as played by the built-in move selector.
type BotSeat struct {
	Color chess.Color
	Skill chess.Skill
	rng   *rand.Rand
}

// Game is one game session: the rules core plus everything around it that
// the rules core deliberately knows nothing about. All access to the core
// goes through the session mutex; the core itself is unsynchronized.
type Game struct {
	ID          string
	mu          sync.Mutex
	core        *chess.Game
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
	players     Players
	bot         *BotSeat
	book        *opening.Book
	opening     *opening.Entry
	drawOfferBy chess.Color
	lastMove    *chess.SimpleMove
}

// NewGame creates a fresh session. The opening book is an injected
// collaborator; pass nil to play without one.
func NewGame(id string, book *opening.Book) *Game {
	return &Game{
		ID:          id,
		core:        chess.NewGame(),
		connections: NewGameConnections(),
		whiteClock:  NewClock(initialClockTime),
		blackClock:  NewClock(initialClockTime),
		book:        book,
	}
}

// AddPlayer seats the player on the first free color.
func (g *Game) AddPlayer(playerID string) (chess.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players.White.ID == "" && (g.bot == nil || g.bot.Color != chess.White) {
		g.players.White = ClientPlayer{ID: playerID, Color: chess.White, TimeLeft: clockTenths(g.whiteClock)}
		return chess.White, nil
	}
	if g.players.Black.ID == "" && (g.bot == nil || g.bot.Color != chess.Black) {
		g.players.Black = ClientPlayer{ID: playerID, Color: chess.Black, TimeLeft: clockTenths(g.blackClock)}
		return chess.Black, nil
	}
	return "", errors.New("game is full")
}

// SeatBot fills one color with the heuristic selector. seed fixes the
// selector's randomness so replays are reproducible.
func (g *Game) SeatBot(color chess.Color, skill chess.Skill, seed int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	seat := ClientPlayer{ID: "bot", Color: color, IsBot: true}
	switch color {
	case chess.White:
		if g.players.White.ID != "" {
			return errors.New("white seat taken")
		}
		seat.TimeLeft = clockTenths(g.whiteClock)
		g.players.White = seat
	case chess.Black:
		if g.players.Black.ID != "" {
			return errors.New("black seat taken")
		}
		seat.TimeLeft = clockTenths(g.blackClock)
		g.players.Black = seat
	default:
		return errors.New("invalid bot color")
	}
	g.bot = &BotSeat{Color: color, Skill: skill, rng: rand.New(rand.NewSource(seed))}
	if color == chess.White {
		// The bot opens immediately.
		if err := g.playBotMove(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	if g.players.White.ID != "" && g.players.White.ID == playerID {
		return true
	}
	if g.players.Black.ID != "" && g.players.Black.ID == playerID {
		return true
	}
	return false
}

func (g *Game) playerColor(playerID string) (chess.Color, bool) {
	if g.players.White.ID == playerID && playerID != "" && !g.players.White.IsBot {
		return chess.White, true
	}
	if g.players.Black.ID == playerID && playerID != "" && !g.players.Black.IsBot {
		return chess.Black, true
	}
	return "", false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

// MakeMove executes one move on behalf of playerID and, in a bot game,
// answers with the bot's reply. The move is given in the long-algebraic
// boundary format ("e2e4", "e7e8q").
func (g *Game) MakeMove(playerID, moveStr string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.playerColor(playerID)
	if !ok {
		return errors.New("player not in game")
	}
	if g.core.Position().SideToMove() != color {
		return errors.New("not your turn")
	}
	from, to, promotion, err := chess.ParseLongMove(moveStr)
	if err != nil {
		return err
	}
	if err := g.applyMove(from, to, promotion); err != nil {
		return err
	}
	if g.bot != nil && !g.core.State().Terminal() && g.core.Position().SideToMove() == g.bot.Color {
		if err := g.playBotMove(); err != nil {
			return err
		}
	}
	return nil
}

// applyMove runs one half-move through the core and the session bookkeeping.
func (g *Game) applyMove(from, to chess.Square, promotion chess.PieceType) error {
	mover := g.core.Position().SideToMove()
	move, err := g.core.ExecuteMove(from, to, promotion)
	if err != nil {
		return err
	}
	// An unanswered draw offer lapses when a move is played.
	g.drawOfferBy = ""
	g.lastMove = &chess.SimpleMove{From: move.From, To: move.To}

	if mover == chess.White {
		g.whiteClock.Stop()
		if !g.core.State().Terminal() {
			g.blackClock.Start()
		}
	} else {
		g.blackClock.Stop()
		if !g.core.State().Terminal() {
			g.whiteClock.Start()
		}
	}
	g.players.White.TimeLeft = clockTenths(g.whiteClock)
	g.players.Black.TimeLeft = clockTenths(g.blackClock)

	if g.book != nil {
		if match := g.book.Lookup(g.core.Notations()); match != nil {
			g.opening = match
		}
	}

	go g.broadcastState()
	return nil
}

// playBotMove selects and executes the bot's reply. The selector reads a
// clone so the live position is only touched by the executor.
func (g *Game) playBotMove() error {
	snapshot := g.core.Position().Clone()
	moves := g.core.LegalMoves()
	move, ok := chess.SelectMove(snapshot, moves, g.bot.Skill, g.bot.rng)
	if !ok {
		return errors.New("bot has no legal moves")
	}
	// The selector never promotes to anything but a queen.
	return g.applyMove(move.From, move.To, "")
}

// Resign ends the game in the opponent's favor.
func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.playerColor(playerID)
	if !ok {
		return errors.New("player not in game")
	}
	if err := g.core.Resign(color); err != nil {
		return err
	}
	g.stopClocks()
	go g.broadcastState()
	return nil
}

// OfferDraw records a draw offer from playerID. In a bot game the offer is
// declined immediately.
func (g *Game) OfferDraw(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.playerColor(playerID)
	if !ok {
		return errors.New("player not in game")
	}
	if g.core.State().Terminal() {
		return chess.ErrGameOver
	}
	if g.bot != nil {
		return nil
	}
	g.drawOfferBy = color
	go g.broadcastState()
	return nil
}

// RespondDraw accepts or declines the pending offer. Accepting ends the
// game as a draw by agreement.
func (g *Game) RespondDraw(playerID string, accept bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.playerColor(playerID)
	if !ok {
		return errors.New("player not in game")
	}
	if g.drawOfferBy == "" || g.drawOfferBy == color {
		return errors.New("no draw offer to respond to")
	}
	g.drawOfferBy = ""
	if accept {
		if err := g.core.AgreeDraw(); err != nil {
			return err
		}
		g.stopClocks()
	}
	go g.broadcastState()
	return nil
}

func (g *Game) stopClocks() {
	g.whiteClock.Stop()
	g.blackClock.Stop()
	g.players.White.TimeLeft = clockTenths(g.whiteClock)
	g.players.Black.TimeLeft = clockTenths(g.blackClock)
}

// Terminal reports whether the game has resolved.
func (g *Game) Terminal() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.core.State().Terminal()
}

// Summary returns what the archive needs about a finished or running game.
func (g *Game) Summary() (whiteID, blackID string, notations []string, finalFEN, result string, openingMatch *opening.Entry) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players.White.ID, g.players.Black.ID, g.core.Notations(), g.core.FEN(), g.core.Result(), g.opening
}

// GetState builds the client snapshot.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	state := g.core.State()
	return GameState{
		Board:          boardView(g.core.Position()),
		FEN:            g.core.FEN(),
		ToMove:         g.core.Position().SideToMove(),
		Status:         state,
		Result:         g.core.Result(),
		IsCheck:        state.Status == chess.StatusCheck || state.Status == chess.StatusCheckmate,
		MoveHistory:    g.core.MoveHistory(),
		CapturedPieces: capturedByColor(g.core.CapturedPieces()),
		LastMove:       g.lastMove,
		Opening:        g.opening,
		DrawOfferBy:    g.drawOfferBy,
		Players:        g.players,
	}
}

func clockTenths(c *Clock) int {
	return int(c.TimeLeft().Milliseconds() / 100)
}

// RegisterConnection attaches a websocket to this game. Duplicate
// connections for the same player are rejected in favor of the existing one.
func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	state := g.GetState()
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("game %s: send state to %s: %v", g.ID, playerID, err)
			g.connections.mu.Lock()
			delete(g.connections.connections, playerID)
			g.connections.mu.Unlock()
		}
	}
}

// String implements fmt.Stringer for logging.
func (g *Game) String() string {
	return fmt.Sprintf("game %s", g.ID)
}
