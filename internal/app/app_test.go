package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-core/internal/config"
	"github.com/vancomm/minesweeper-core/internal/mines"
	"github.com/vancomm/minesweeper-core/internal/repository"
)

type emptyStore struct{}

func (emptyStore) CreateGameSession(context.Context, *mines.Game) (*repository.GameSession, error) {
	return nil, pgx.ErrTxClosed
}

func (emptyStore) FetchGameSession(context.Context, int64) (*repository.GameSession, error) {
	return nil, pgx.ErrNoRows
}

func (emptyStore) PlayGameSession(
	context.Context, int64, func(*mines.Game) error,
) (*repository.GameSession, *mines.Game, error) {
	return nil, nil, pgx.ErrNoRows
}

func newTestApp(t *testing.T) (*App, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	cfg := &config.Config{Addr: "127.0.0.1:0"}
	return New(logger, cfg, emptyStore{}), hook
}

func TestRoutes(t *testing.T) {
	a, hook := newTestApp(t)
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	var status map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&status))
	res.Body.Close()
	assert.Equal(t, "ok", status["status"])

	res, err = http.Get(srv.URL + "/game/3")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, err = http.Post(srv.URL+"/game/3/open?row=0&col=0", "", nil)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, err = http.Get(srv.URL + "/game")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	assert.NotEmpty(t, hook.AllEntries())
}

func TestCorsHeaders(t *testing.T) {
	a, _ := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("Origin", "https://mines.example")
	rec := httptest.NewRecorder()

	a.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "https://mines.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStartStopsOnCancel(t *testing.T) {
	a, _ := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
