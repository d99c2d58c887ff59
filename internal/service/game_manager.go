package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/AndersStabell/anderschess-backend/internal/chess"
	"github.com/AndersStabell/anderschess-backend/internal/model"
	"github.com/AndersStabell/anderschess-backend/internal/opening"
	"github.com/AndersStabell/anderschess-backend/internal/store"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// GameManager owns every live game. The opening book and the archive are
// injected collaborators; either may be nil.
type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	book             *opening.Book
	archive          *store.Archive
	mu               sync.RWMutex
}

func NewGameManager(book *opening.Book, archive *store.Archive) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		book:             book,
		archive:          archive,
	}

	go gm.processMatchmaking()

	return gm
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}
	gm.games[gameID] = model.NewGame(gameID, gm.book)
	return nil
}

// CreateBotGame creates a game with the selector seated on the opposite
// color of the human player.
func (gm *GameManager) CreateBotGame(gameID string, humanColor chess.Color, skill chess.Skill) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}
	game := model.NewGame(gameID, gm.book)
	if err := game.SeatBot(humanColor.Opponent(), skill, time.Now().UnixNano()); err != nil {
		return err
	}
	gm.games[gameID] = game
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.New("game not found")
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (chess.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.MakeMove(playerID, move); err != nil {
		return err
	}
	gm.maybeArchive(game)
	return nil
}

func (gm *GameManager) Resign(gameID string, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.Resign(playerID); err != nil {
		return err
	}
	gm.maybeArchive(game)
	return nil
}

func (gm *GameManager) OfferDraw(gameID string, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.OfferDraw(playerID)
}

func (gm *GameManager) RespondDraw(gameID string, playerID string, accept bool) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.RespondDraw(playerID, accept); err != nil {
		return err
	}
	gm.maybeArchive(game)
	return nil
}

// maybeArchive writes the finished game to the archive. Saves are keyed by
// game ID, so repeating one for the same finished game is harmless.
func (gm *GameManager) maybeArchive(game *model.Game) {
	if gm.archive == nil || !game.Terminal() {
		return
	}
	whiteID, blackID, notations, finalFEN, result, openingMatch := game.Summary()
	record := store.GameRecord{
		ID:       game.ID,
		White:    whiteID,
		Black:    blackID,
		Moves:    notations,
		FinalFEN: finalFEN,
		Result:   result,
		EndedAt:  time.Now(),
	}
	if openingMatch != nil {
		record.Opening = openingMatch.Name
		record.ECO = openingMatch.ECO
	}
	if err := gm.archive.Save(record); err != nil {
		log.Printf("archive game %s: %v", game.ID, err)
	}
}

func (gm *GameManager) GetArchivedGame(gameID string) (store.GameRecord, error) {
	if gm.archive == nil {
		return store.GameRecord{}, store.ErrNotFound
	}
	return gm.archive.Get(gameID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}

func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
	return nil
}

func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.matchingChannels, playerID)
}

// processMatchmaking pairs the two longest-waiting players once a second.
func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		player1, player2, ok := gm.queue.NextPair()
		if !ok {
			continue
		}

		gameID := uuid.New().String()
		game := model.NewGame(gameID, gm.book)

		p1Color, err := game.AddPlayer(player1.ID)
		if err != nil {
			log.Printf("matchmaking: seat %s: %v", player1.ID, err)
			continue
		}
		p2Color, err := game.AddPlayer(player2.ID)
		if err != nil {
			log.Printf("matchmaking: seat %s: %v", player2.ID, err)
			continue
		}

		gm.mu.Lock()
		gm.games[gameID] = game
		gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
		gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
		gm.mu.Unlock()
	}
}

// notifyMatch sends the event to the player's matchmaking channel and closes
// it. Callers hold gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("matchmaking: marshal event: %v", err)
		return
	}
	select {
	case ch <- string(payload):
		delete(gm.matchingChannels, playerID)
		close(ch)
	default:
		log.Printf("matchmaking: could not notify %s", playerID)
	}
}
