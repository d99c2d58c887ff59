package main

import (
	"flag"
	"log"
	"os"

	"github.com/AndersStabell/anderschess-backend/internal/controller"
	"github.com/AndersStabell/anderschess-backend/internal/middleware"
	"github.com/AndersStabell/anderschess-backend/internal/opening"
	"github.com/AndersStabell/anderschess-backend/internal/service"
	"github.com/AndersStabell/anderschess-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	addr := flag.String("addr", envOr("CHESS_ADDR", ":3000"), "listen address")
	dataDir := flag.String("data", envOr("CHESS_DATA_DIR", "data"), "directory for the game archive")
	origin := flag.String("origin", envOr("CHESS_ORIGIN", "http://localhost:5173"), "allowed CORS origin")
	flag.Parse()

	archive, err := store.Open(*dataDir)
	if err != nil {
		log.Fatalf("open archive: %v", err)
	}
	defer archive.Close()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     *origin,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	book := opening.NewBook()
	gameManager := service.NewGameManager(book, archive)
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Use("/ws/game/:gameId", middleware.WebSocketUpgrade())
	app.Get("/ws/game/:gameId", websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{*origin},
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Get("/matchmaking/wait", gameController.WaitForMatch)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/bot", gameController.CreateBotGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/archive/:gameId", gameController.GetArchivedGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)

	log.Fatal(app.Listen(*addr))
}
