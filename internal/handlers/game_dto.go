package handlers

import (
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-core/internal/mines"
	"github.com/vancomm/minesweeper-core/internal/repository"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

type CreateGameDTO struct {
	Layout string `schema:"layout"`
}

func ParseCreateGameDTO(src map[string][]string) (CreateGameDTO, error) {
	var dto CreateGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type Position struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (Position, error) {
	var pos Position
	err := decoder.Decode(&pos, src)
	return pos, err
}

type FetchOptions struct {
	Reveal bool `schema:"reveal"`
}

func ParseFetchOptions(src map[string][]string) (FetchOptions, error) {
	var opts FetchOptions
	err := decoder.Decode(&opts, src)
	return opts, err
}

type GameSessionDTO struct {
	GameSessionID string              `json:"game_session_id"`
	Field         [][]mines.CellState `json:"field"`
	Rows          int                 `json:"rows"`
	Cols          int                 `json:"cols"`
	MineCount     int                 `json:"mine_count"`
	Outcome       mines.Outcome       `json:"outcome"`
	Revealed      bool                `json:"revealed,omitempty"`
	Opened        []mines.Point       `json:"opened,omitempty"`
	StartedAt     int64               `json:"started_at"`
	EndedAt       *int64              `json:"ended_at,omitempty"`
}

// NewGameSessionDTO shows the revealed field only when reveal is set and
// the game is over.
func NewGameSessionDTO(
	session *repository.GameSession,
	g *mines.Game,
	reveal bool,
) *GameSessionDTO {
	var endedAt *int64
	if session.EndedAt != nil {
		e := session.EndedAt.UnixMilli()
		endedAt = &e
	}
	dto := &GameSessionDTO{
		GameSessionID: strconv.FormatInt(session.GameSessionID, 10),
		Rows:          g.Rows(),
		Cols:          g.Cols(),
		MineCount:     g.Field().Mines(),
		Outcome:       g.Outcome(),
		StartedAt:     session.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
	if reveal && g.Finished() {
		dto.Field = g.RevealedField()
		dto.Revealed = true
	} else {
		dto.Field = g.CurrentField()
	}
	return dto
}
