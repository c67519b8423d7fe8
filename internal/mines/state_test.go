package mines

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameBytesRestoresPosition(t *testing.T) {
	tests := []struct {
		name  string
		moves []Point
	}{
		{name: "fresh"},
		{name: "in progress", moves: []Point{{0, 0}}},
		{name: "lost", moves: []Point{{0, 0}, {1, 1}}},
		{name: "won", moves: []Point{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := newTestGame(t, [][]bool{
				{F, F, F},
				{F, T, F},
				{F, F, F},
			})
			for _, p := range test.moves {
				_, err := g.Reveal(p)
				require.NoError(t, err)
			}

			b, err := g.Bytes()
			require.NoError(t, err)
			restored, err := DecodeGame(b)
			require.NoError(t, err)

			assert.Equal(t, g.CurrentField(), restored.CurrentField())
			assert.Equal(t, g.Outcome(), restored.Outcome())
			assert.Equal(t, g.OpenedCount(), restored.OpenedCount())
			assert.Equal(t, g.Field().Layout(), restored.Field().Layout())
		})
	}
}

func TestDecodedGameKeepsPlaying(t *testing.T) {
	g := newTestGame(t, [][]bool{{F, F, T, F, F}})
	require.NoError(t, g.Open(0, 0))

	b, err := g.Bytes()
	require.NoError(t, err)
	restored, err := DecodeGame(b)
	require.NoError(t, err)

	require.NoError(t, restored.Open(0, 4))
	assert.Equal(t, Win, restored.Outcome())
	assert.Equal(t, InProgress, g.Outcome())
}

func encodeState(t *testing.T, state gameState) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(state))
	return buf.Bytes()
}

func TestDecodeGameRejectsCorruptState(t *testing.T) {
	tests := []struct {
		name  string
		state gameState
	}{
		{
			name:  "empty",
			state: gameState{Rows: 0, Cols: 0},
		},
		{
			name:  "short mask",
			state: gameState{Rows: 1, Cols: 2, Mines: []bool{F, T}, Opened: []bool{F}},
		},
		{
			name:  "two mines opened",
			state: gameState{Rows: 1, Cols: 3, Mines: []bool{T, F, T}, Opened: []bool{T, F, T}, Outcome: Lose},
		},
		{
			name:  "outcome mismatch",
			state: gameState{Rows: 1, Cols: 2, Mines: []bool{F, T}, Opened: []bool{T, F}, Outcome: InProgress},
		},
		{
			name:  "lose without mine",
			state: gameState{Rows: 1, Cols: 3, Mines: []bool{F, F, T}, Opened: []bool{T, F, F}, Outcome: Lose},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodeGame(encodeState(t, test.state))
			assert.ErrorIs(t, err, ErrCorruptState)
		})
	}
}

func TestDecodeGameRejectsGarbage(t *testing.T) {
	_, err := DecodeGame([]byte("not a game"))
	assert.ErrorIs(t, err, ErrCorruptState)
}
