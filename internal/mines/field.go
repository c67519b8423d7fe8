package mines

import (
	"fmt"
	"iter"
	"strings"
)

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Field is an immutable mine layout. Cells are stored row-major.
type Field struct {
	rows, cols int
	mines      []bool
	mineCount  int
}

// NewField copies layout into a new [Field]. The layout must be
// rectangular and have at least one cell.
func NewField(layout [][]bool) (*Field, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidLayout)
	}
	rows, cols := len(layout), len(layout[0])
	mines := make([]bool, 0, rows*cols)
	for r, row := range layout {
		if len(row) != cols {
			return nil, fmt.Errorf(
				"%w: row %d has %d cells, expected %d",
				ErrInvalidLayout, r, len(row), cols,
			)
		}
		mines = append(mines, row...)
	}
	return newField(rows, cols, mines), nil
}

func newField(rows, cols int, mines []bool) *Field {
	f := &Field{rows: rows, cols: cols, mines: mines}
	for _, m := range mines {
		if m {
			f.mineCount++
		}
	}
	return f
}

// ParseField reads a layout written one row per line, with '*' or 'x'
// for a mine and '.' or '-' for a safe cell. Spaces and blank lines are
// skipped.
func ParseField(s string) (*Field, error) {
	var layout [][]bool
	for n, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]bool, 0, len(line))
		for _, ch := range line {
			switch ch {
			case '*', 'x', 'X':
				row = append(row, true)
			case '.', '-':
				row = append(row, false)
			case ' ', '\t':
			default:
				return nil, fmt.Errorf(
					"%w: unexpected character %q on line %d",
					ErrInvalidLayout, ch, n+1,
				)
			}
		}
		layout = append(layout, row)
	}
	return NewField(layout)
}

func (f *Field) Rows() int { return f.rows }

func (f *Field) Cols() int { return f.cols }

// Mines returns the number of mines in the field.
func (f *Field) Mines() int { return f.mineCount }

func (f *Field) safeCount() int { return len(f.mines) - f.mineCount }

func (f *Field) InBounds(p Point) bool {
	return 0 <= p.Row && p.Row < f.rows && 0 <= p.Col && p.Col < f.cols
}

// MineAt panics if p is out of bounds.
func (f *Field) MineAt(p Point) bool {
	return f.mines[f.index(p)]
}

func (f *Field) index(p Point) int {
	if !f.InBounds(p) {
		panic(&OutOfBoundsError{Point: p, Rows: f.rows, Cols: f.cols})
	}
	return p.Row*f.cols + p.Col
}

func (f *Field) point(i int) Point {
	return Point{Row: i / f.cols, Col: i % f.cols}
}

// Neighbors yields the in-bounds cells adjacent to p, diagonals included.
func (f *Field) Neighbors(p Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				q := Point{Row: p.Row + dr, Col: p.Col + dc}
				if (dr == 0 && dc == 0) || !f.InBounds(q) {
					continue
				}
				if !yield(q) {
					return
				}
			}
		}
	}
}

// NeighborCount returns the number of mines adjacent to p.
func (f *Field) NeighborCount(p Point) int {
	n := 0
	for q := range f.Neighbors(p) {
		if f.mines[q.Row*f.cols+q.Col] {
			n++
		}
	}
	return n
}

func (f *Field) Layout() [][]bool {
	layout := make([][]bool, f.rows)
	for r := range f.rows {
		layout[r] = make([]bool, f.cols)
		copy(layout[r], f.mines[r*f.cols:(r+1)*f.cols])
	}
	return layout
}

func (f *Field) String() string {
	var b strings.Builder
	for i, m := range f.mines {
		if m {
			b.WriteByte('*')
		} else {
			b.WriteByte('.')
		}
		if (i+1)%f.cols == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
