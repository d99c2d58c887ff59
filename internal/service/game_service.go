package service

import (
	"fmt"

	"github.com/AndersStabell/anderschess-backend/internal/chess"
	"github.com/AndersStabell/anderschess-backend/internal/model"
	"github.com/AndersStabell/anderschess-backend/internal/store"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

// CreateBotGame creates a game against the built-in selector and seats the
// requesting player on their chosen color.
func (gs *GameService) CreateBotGame(playerID string, humanColor chess.Color, skill chess.Skill) (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateBotGame(gameID, humanColor, skill); err != nil {
		return "", fmt.Errorf("failed to create bot game: %w", err)
	}
	if _, err := gs.gameManager.AddPlayerToGame(gameID, playerID); err != nil {
		return "", fmt.Errorf("failed to seat player: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (chess.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) GetArchivedGame(gameID string) (store.GameRecord, error) {
	return gs.gameManager.GetArchivedGame(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move string) error {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) HandleResign(gameID string, playerID string) error {
	return gs.gameManager.Resign(gameID, playerID)
}

func (gs *GameService) HandleDrawOffer(gameID string, playerID string) error {
	return gs.gameManager.OfferDraw(gameID, playerID)
}

func (gs *GameService) HandleDrawResponse(gameID string, playerID string, accept bool) error {
	return gs.gameManager.RespondDraw(gameID, playerID, accept)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	return gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID)
}
