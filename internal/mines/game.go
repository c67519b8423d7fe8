package mines

import (
	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Game is the reveal state of a single game over a fixed [Field]. It is
// not safe for concurrent use.
type Game struct {
	field   *Field
	opened  []bool
	nsafe   int // opened cells without a mine
	outcome Outcome
}

// NewGame starts a game on field. A field made only of mines has nothing
// left to open and is won from the start.
func NewGame(field *Field) *Game {
	g := &Game{
		field:  field,
		opened: make([]bool, field.rows*field.cols),
	}
	if field.safeCount() == 0 {
		g.outcome = Win
	}
	return g
}

// NewGameFromLayout is a shorthand for [NewField] followed by [NewGame].
func NewGameFromLayout(layout [][]bool) (*Game, error) {
	field, err := NewField(layout)
	if err != nil {
		return nil, err
	}
	return NewGame(field), nil
}

func (g *Game) Field() *Field { return g.field }

func (g *Game) Rows() int { return g.field.rows }

func (g *Game) Cols() int { return g.field.cols }

func (g *Game) Outcome() Outcome { return g.outcome }

func (g *Game) Finished() bool { return g.outcome != InProgress }

// IsOpened reports false for cells outside the field.
func (g *Game) IsOpened(p Point) bool {
	return g.field.InBounds(p) && g.opened[g.field.index(p)]
}

// OpenedCount returns the number of open cells, the detonated mine
// included.
func (g *Game) OpenedCount() int {
	if g.outcome == Lose {
		return g.nsafe + 1
	}
	return g.nsafe
}

// Open reveals the cell at row, col. See [Game.Reveal].
func (g *Game) Open(row, col int) error {
	_, err := g.Reveal(Point{Row: row, Col: col})
	return err
}

// Reveal opens p and returns every cell that was opened as a result, in
// the order they were opened. Opening an already open cell is a no-op.
// A cell with no mined neighbors opens its neighbors as well, and so on
// until the region is bordered by numbered cells.
//
// Reveal fails with [ErrOutOfBounds] or [ErrGameFinished] without
// changing the game.
func (g *Game) Reveal(p Point) ([]Point, error) {
	if !g.field.InBounds(p) {
		return nil, &OutOfBoundsError{
			Point: p, Rows: g.field.rows, Cols: g.field.cols,
		}
	}
	if g.outcome != InProgress {
		return nil, ErrGameFinished
	}

	i := g.field.index(p)
	if g.opened[i] {
		return nil, nil
	}

	if g.field.mines[i] {
		g.opened[i] = true
		g.outcome = Lose
		Log.WithField("cell", p).Debug("mine detonated")
		return []Point{p}, nil
	}

	opened := g.flood(i)

	if g.nsafe == g.field.safeCount() {
		g.outcome = Win
	}

	Log.WithFields(logrus.Fields{
		"cell":    p,
		"opened":  len(opened),
		"outcome": g.outcome,
	}).Debug("cells revealed")

	return opened, nil
}

// flood opens the safe cell at start and everything reachable from it
// through zero-count cells. Cells are marked open when queued so none is
// visited twice.
func (g *Game) flood(start int) []Point {
	var (
		todo   deque.Deque[int]
		opened []Point
	)

	g.markOpen(start)
	todo.PushBack(start)

	for todo.Len() > 0 {
		p := g.field.point(todo.PopFront())
		opened = append(opened, p)

		if g.field.NeighborCount(p) != 0 {
			continue
		}
		for q := range g.field.Neighbors(p) {
			j := q.Row*g.field.cols + q.Col
			if g.opened[j] || g.field.mines[j] {
				continue
			}
			g.markOpen(j)
			todo.PushBack(j)
		}
	}

	return opened
}

func (g *Game) markOpen(i int) {
	g.opened[i] = true
	g.nsafe++
}

// CurrentField returns a fresh snapshot of what the player can see. After
// a loss only the detonated mine is shown; see [Game.RevealedField].
func (g *Game) CurrentField() [][]CellState {
	grid := g.newGrid()
	for i, open := range g.opened {
		p := g.field.point(i)
		switch {
		case !open:
			grid[p.Row][p.Col] = Closed
		case g.field.mines[i]:
			grid[p.Row][p.Col] = Mine
		default:
			grid[p.Row][p.Col] = Neighbors(g.field.NeighborCount(p))
		}
	}
	return grid
}

// RevealedField returns a snapshot with every cell shown, mines included.
// It does not change the game.
func (g *Game) RevealedField() [][]CellState {
	grid := g.newGrid()
	for i, mine := range g.field.mines {
		p := g.field.point(i)
		if mine {
			grid[p.Row][p.Col] = Mine
		} else {
			grid[p.Row][p.Col] = Neighbors(g.field.NeighborCount(p))
		}
	}
	return grid
}

func (g *Game) newGrid() [][]CellState {
	grid := make([][]CellState, g.field.rows)
	for r := range grid {
		grid[r] = make([]CellState, g.field.cols)
	}
	return grid
}

func (g *Game) String() string {
	return FormatField(g.CurrentField())
}
