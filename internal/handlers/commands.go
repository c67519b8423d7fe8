package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-core/internal/mines"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0, // get the current field
	"o": 2, // open <row> <col>
	"r": 0, // get the revealed field of a finished game
}

var errBadCommand = errors.New("bad command")

func parseRowCol(args []string) (p mines.Point, err error) {
	if p.Row, err = strconv.Atoi(args[0]); err != nil {
		return p, fmt.Errorf("%w: row must be an int", errBadCommand)
	}
	if p.Col, err = strconv.Atoi(args[1]); err != nil {
		return p, fmt.Errorf("%w: col must be an int", errBadCommand)
	}
	return p, nil
}

func (g GameHandler) executeCommand(
	ctx context.Context, sessionID int64, c string,
) (*GameSessionDTO, error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty command", errBadCommand)
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return nil, fmt.Errorf("%w: unknown command %q", errBadCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return nil, fmt.Errorf(
			"%w: %q takes %d arguments, got %d",
			errBadCommand, parts[0], nargs, len(parts)-1,
		)
	}

	switch parts[0] {
	case "g":
		return g.fetch(ctx, sessionID, false)
	case "r":
		return g.fetch(ctx, sessionID, true)
	case "o":
		p, err := parseRowCol(parts[1:])
		if err != nil {
			return nil, err
		}
		return g.open(ctx, sessionID, p)
	}
	return nil, fmt.Errorf("%w: unknown command %q", errBadCommand, parts[0])
}
