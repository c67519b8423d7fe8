package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// ConnectWS serves a session over a websocket. Each text message holds
// one command per line and every command gets a JSON reply: the session
// or an error object.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseSessionID(r)
	if err != nil {
		badRequest(w, g.logger, err)
		return
	}

	if _, err := g.store.FetchGameSession(r.Context(), sessionID); err != nil {
		sendError(w, g.logger, err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.WithError(err).Warn("upgrade failed")
		return
	}
	defer conn.Close()

	logger := g.logger.WithField("game_session_id", sessionID)
	logger.Debug("websocket connected")

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway,
			) {
				logger.WithError(err).Warn("read failed")
			}
			return
		}
		if mt != websocket.TextMessage {
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(
				websocket.CloseUnsupportedData, "text messages only",
			))
			return
		}

		for _, line := range strings.Split(strings.TrimSpace(string(message)), "\n") {
			logger.WithField("command", line).Debug("> ")

			var reply any
			dto, err := g.executeCommand(r.Context(), sessionID, line)
			switch {
			case err == nil:
				reply = dto
			case statusCode(err) == http.StatusInternalServerError:
				logger.WithError(err).Error("command failed")
				reply = wrapError(errors.New(http.StatusText(http.StatusInternalServerError)))
			default:
				reply = wrapError(err)
			}

			if err := conn.WriteJSON(reply); err != nil {
				logger.WithError(err).Warn("write failed")
				return
			}
		}
	}
}
