package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-core/internal/mines"
)

func TestSetClause(t *testing.T) {
	outcome := mines.Lose
	endedAt := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
	state := []byte{1, 2, 3}

	tests := []struct {
		name     string
		params   UpdateGameSessionParams
		clause   string
		expected map[string]any
	}{
		{
			name:     "nothing",
			params:   UpdateGameSessionParams{},
			clause:   "updated_at = now()",
			expected: map[string]any{},
		},
		{
			name:   "state only",
			params: UpdateGameSessionParams{State: &state},
			clause: "updated_at = now(), state = @state",
			expected: map[string]any{
				"state": state,
			},
		},
		{
			name: "everything",
			params: UpdateGameSessionParams{
				Outcome: &outcome, EndedAt: &endedAt, State: &state,
			},
			clause: "updated_at = now(), outcome = @outcome, ended_at = @ended_at, state = @state",
			expected: map[string]any{
				"outcome":  "lose",
				"ended_at": endedAt,
				"state":    state,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clause, args := test.params.SetClause()
			assert.Equal(t, test.clause, clause)
			assert.Equal(t, test.expected, args)
		})
	}
}

func newSession(t *testing.T, game *mines.Game) *GameSession {
	t.Helper()
	state, err := game.Bytes()
	require.NoError(t, err)
	return &GameSession{
		GameSessionID: 7,
		Width:         game.Cols(),
		Height:        game.Rows(),
		MineCount:     game.Field().Mines(),
		Outcome:       game.Outcome().String(),
		State:         state,
	}
}

func TestSessionUpdateInProgress(t *testing.T) {
	game, err := mines.NewGameFromLayout([][]bool{{false, true}, {false, false}})
	require.NoError(t, err)
	session := newSession(t, game)

	require.NoError(t, game.Open(0, 0))
	params, err := sessionUpdate(session, game, time.Now())
	require.NoError(t, err)

	assert.Nil(t, params.Outcome)
	assert.Nil(t, params.EndedAt)
	require.NotNil(t, params.State)

	restored, err := mines.DecodeGame(*params.State)
	require.NoError(t, err)
	assert.Equal(t, game.CurrentField(), restored.CurrentField())
}

func TestSessionUpdateFinished(t *testing.T) {
	game, err := mines.NewGameFromLayout([][]bool{{false, true}})
	require.NoError(t, err)
	session := newSession(t, game)
	now := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, game.Open(0, 1))
	params, err := sessionUpdate(session, game, now)
	require.NoError(t, err)

	require.NotNil(t, params.Outcome)
	assert.Equal(t, mines.Lose, *params.Outcome)
	require.NotNil(t, params.EndedAt)
	assert.Equal(t, now, *params.EndedAt)
}

func TestGameSessionGame(t *testing.T) {
	game, err := mines.NewGameFromLayout([][]bool{{false, false, true}})
	require.NoError(t, err)
	require.NoError(t, game.Open(0, 0))
	session := newSession(t, game)

	restored, err := session.Game()
	require.NoError(t, err)
	assert.Equal(t, game.CurrentField(), restored.CurrentField())

	session.State = []byte("garbage")
	_, err = session.Game()
	assert.ErrorIs(t, err, mines.ErrCorruptState)
}
