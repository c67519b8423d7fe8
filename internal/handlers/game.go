package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-core/internal/config"
	"github.com/vancomm/minesweeper-core/internal/mines"
	"github.com/vancomm/minesweeper-core/internal/repository"
)

const maxLayoutBytes = 64 << 10

type SessionStore interface {
	CreateGameSession(ctx context.Context, game *mines.Game) (*repository.GameSession, error)
	FetchGameSession(ctx context.Context, gameSessionID int64) (*repository.GameSession, error)
	PlayGameSession(
		ctx context.Context, gameSessionID int64, move func(*mines.Game) error,
	) (*repository.GameSession, *mines.Game, error)
}

type GameHandler struct {
	logger logrus.FieldLogger
	store  SessionStore
	ws     *config.WebSocket
}

func NewGameHandler(
	logger logrus.FieldLogger,
	store SessionStore,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		store:  store,
		ws:     ws,
	}
}

func parseSessionID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid game session id %q", r.PathValue("id"))
	}
	return id, nil
}

func badRequest(w http.ResponseWriter, logger logrus.FieldLogger, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	sendJSONOrLog(w, logger, wrapError(err))
}

// NewGame starts a session from a mine layout given either as the layout
// query parameter or as the request body.
func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateGameDTO(r.URL.Query())
	if err != nil {
		badRequest(w, g.logger, err)
		return
	}

	layout := dto.Layout
	if layout == "" {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxLayoutBytes))
		if err != nil {
			badRequest(w, g.logger, fmt.Errorf("unable to read layout: %w", err))
			return
		}
		layout = string(body)
	}

	field, err := mines.ParseField(layout)
	if err != nil {
		sendError(w, g.logger, err)
		return
	}
	game := mines.NewGame(field)

	session, err := g.store.CreateGameSession(r.Context(), game)
	if err != nil {
		sendError(w, g.logger, err)
		return
	}

	g.logger.WithFields(logrus.Fields{
		"game_session_id": session.GameSessionID,
		"rows":            field.Rows(),
		"cols":            field.Cols(),
		"mines":           field.Mines(),
	}).Debug("game session created")

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game, false))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseSessionID(r)
	if err != nil {
		badRequest(w, g.logger, err)
		return
	}

	opts, err := ParseFetchOptions(r.URL.Query())
	if err != nil {
		badRequest(w, g.logger, err)
		return
	}

	dto, err := g.fetch(r.Context(), sessionID, opts.Reveal)
	if err != nil {
		sendError(w, g.logger, err)
		return
	}

	sendJSONOrLog(w, g.logger, dto)
}

func (g GameHandler) fetch(
	ctx context.Context, sessionID int64, reveal bool,
) (*GameSessionDTO, error) {
	session, err := g.store.FetchGameSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	game, err := session.Game()
	if err != nil {
		return nil, err
	}
	return NewGameSessionDTO(session, game, reveal), nil
}

func (g GameHandler) Open(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		badRequest(w, g.logger, err)
		return
	}

	sessionID, err := parseSessionID(r)
	if err != nil {
		badRequest(w, g.logger, err)
		return
	}

	dto, err := g.open(r.Context(), sessionID, mines.Point{Row: pos.Row, Col: pos.Col})
	if err != nil {
		sendError(w, g.logger, err)
		return
	}

	sendJSONOrLog(w, g.logger, dto)
}

func (g GameHandler) open(
	ctx context.Context, sessionID int64, p mines.Point,
) (*GameSessionDTO, error) {
	var opened []mines.Point
	session, game, err := g.store.PlayGameSession(
		ctx, sessionID, func(game *mines.Game) (err error) {
			opened, err = game.Reveal(p)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	if game.Finished() && len(opened) > 0 {
		g.logger.WithFields(logrus.Fields{
			"game_session_id": sessionID,
			"outcome":         game.Outcome(),
		}).Info("game finished")
	}

	dto := NewGameSessionDTO(session, game, false)
	dto.Opened = opened
	return dto, nil
}
