package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-core/internal/mines"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, logger logrus.FieldLogger, v any) {
	_, err := SendJSON(w, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.WithError(err).WithField("response", v).Error("unable to send response")
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

// statusCode maps errors coming out of the engine and the database to
// HTTP statuses. Unknown errors are internal.
func statusCode(err error) int {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrInvalidLayout),
		errors.Is(err, errBadCommand):
		return http.StatusBadRequest
	case errors.Is(err, mines.ErrGameFinished):
		return http.StatusConflict
	case errors.Is(err, pgx.ErrNoRows):
		return http.StatusNotFound
	case errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func sendError(w http.ResponseWriter, logger logrus.FieldLogger, err error) {
	code := statusCode(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if code == http.StatusInternalServerError {
		logger.WithError(err).Error("request failed")
		err = errors.New(http.StatusText(code))
	}
	if _, werr := SendJSON(w, wrapError(err)); werr != nil {
		logger.WithError(werr).Error("unable to send error response")
	}
}
