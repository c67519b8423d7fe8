package app

import (
	"net/http"

	"github.com/vancomm/minesweeper-core/internal/config"
	"github.com/vancomm/minesweeper-core/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.logger, a.store, config.NewWebSocket(a.config.AllowedOrigins),
	)

	a.router.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		handlers.SendJSON(w, map[string]string{"status": "ok"})
	})

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/open", game.Open)
	a.router.HandleFunc("/game/{id}/connect", game.ConnectWS)
}
