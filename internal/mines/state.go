package mines

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

type gameState struct {
	Rows, Cols int
	Mines      []bool
	Opened     []bool
	Outcome    Outcome
}

func (g *Game) Bytes() ([]byte, error) {
	state := gameState{
		Rows:    g.field.rows,
		Cols:    g.field.cols,
		Mines:   g.field.mines,
		Opened:  g.opened,
		Outcome: g.outcome,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeGame restores a game written by [Game.Bytes]. States that could
// not have been produced by play are rejected with [ErrCorruptState].
func DecodeGame(buf []byte) (*Game, error) {
	var state gameState
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&state); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}

	n := state.Rows * state.Cols
	if state.Rows <= 0 || state.Cols <= 0 ||
		len(state.Mines) != n || len(state.Opened) != n {
		return nil, fmt.Errorf(
			"%w: %dx%d field with %d mine cells and %d opened cells",
			ErrCorruptState, state.Rows, state.Cols,
			len(state.Mines), len(state.Opened),
		)
	}

	g := NewGame(newField(state.Rows, state.Cols, state.Mines))
	detonated := 0
	for i, open := range state.Opened {
		if !open {
			continue
		}
		g.opened[i] = true
		if state.Mines[i] {
			detonated++
		} else {
			g.nsafe++
		}
	}

	var outcome Outcome
	switch {
	case detonated == 1:
		outcome = Lose
	case detonated > 1:
		return nil, fmt.Errorf("%w: %d mines opened", ErrCorruptState, detonated)
	case g.nsafe == g.field.safeCount():
		outcome = Win
	default:
		outcome = InProgress
	}
	if outcome != state.Outcome {
		return nil, fmt.Errorf(
			"%w: stored outcome %s does not match board (%s)",
			ErrCorruptState, state.Outcome, outcome,
		)
	}
	g.outcome = outcome

	return g, nil
}
