package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper-core/internal/mines"
)

type GameSession struct {
	GameSessionID int64      `db:"game_session_id"`
	Width         int        `db:"width"`
	Height        int        `db:"height"`
	MineCount     int        `db:"mine_count"`
	Outcome       string     `db:"outcome"`
	State         []byte     `db:"state"`
	StartedAt     time.Time  `db:"started_at"`
	EndedAt       *time.Time `db:"ended_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// Game decodes the stored game state.
func (s GameSession) Game() (*mines.Game, error) {
	game, err := mines.DecodeGame(s.State)
	if err != nil {
		return nil, fmt.Errorf("game session %d: %w", s.GameSessionID, err)
	}
	return game, nil
}

func (q *Queries) CreateGameSession(
	ctx context.Context, game *mines.Game,
) (*GameSession, error) {
	state, err := game.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"width":      game.Cols(),
		"height":     game.Rows(),
		"mine_count": game.Field().Mines(),
		"outcome":    game.Outcome().String(),
		"state":      state,
	}
	endedAt := "NULL"
	if game.Finished() {
		endedAt = "now()"
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			width, height, mine_count, outcome, state, ended_at
		)
		VALUES (
			@width, @height, @mine_count, @outcome, @state, `+endedAt+`
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

func (q *Queries) FetchGameSession(
	ctx context.Context, gameSessionID int64,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionID,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q *Queries) lockGameSession(
	ctx context.Context, gameSessionID int64,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1 FOR UPDATE",
		gameSessionID,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

type UpdateGameSessionParams struct {
	Outcome *mines.Outcome
	EndedAt *time.Time
	State   *[]byte
}

func (p UpdateGameSessionParams) SetClause() (string, map[string]any) {
	parts := []string{"updated_at = now()"}
	args := make(map[string]any)

	if p.Outcome != nil {
		parts = append(parts, "outcome = @outcome")
		args["outcome"] = p.Outcome.String()
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}

	return strings.Join(parts, ", "), args
}

func (q *Queries) UpdateGameSession(
	ctx context.Context, gameSessionID int64, params UpdateGameSessionParams,
) (*GameSession, error) {
	setClause, args := params.SetClause()
	args["game_session_id"] = gameSessionID
	rows, _ := q.db.Query(
		ctx,
		"UPDATE game_session SET "+setClause+" WHERE game_session_id = @game_session_id RETURNING *",
		pgx.NamedArgs(args),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

// PlayGameSession applies move to the stored game while holding a row
// lock, then writes the new state back. Nothing is written if move fails.
func (q *Queries) PlayGameSession(
	ctx context.Context, gameSessionID int64, move func(*mines.Game) error,
) (session *GameSession, game *mines.Game, err error) {
	err = pgx.BeginFunc(ctx, q.db, func(tx pgx.Tx) error {
		qtx := q.WithTx(tx)

		locked, err := qtx.lockGameSession(ctx, gameSessionID)
		if err != nil {
			return err
		}
		game, err = locked.Game()
		if err != nil {
			return err
		}
		if err := move(game); err != nil {
			return err
		}

		params, err := sessionUpdate(locked, game, time.Now().UTC())
		if err != nil {
			return err
		}
		session, err = qtx.UpdateGameSession(ctx, gameSessionID, params)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return session, game, nil
}

// sessionUpdate describes the changes needed to store game in session.
func sessionUpdate(
	session *GameSession, game *mines.Game, now time.Time,
) (UpdateGameSessionParams, error) {
	state, err := game.Bytes()
	if err != nil {
		return UpdateGameSessionParams{}, err
	}
	params := UpdateGameSessionParams{State: &state}
	if outcome := game.Outcome(); outcome.String() != session.Outcome {
		params.Outcome = &outcome
	}
	if game.Finished() && session.EndedAt == nil {
		params.EndedAt = &now
	}
	return params, nil
}
