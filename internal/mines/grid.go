package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Closed CellState = -2
	Mine   CellState = -1
	/*
	 * 0 to 8 mean the cell is open and has that many mines
	 * around it.
	 */
	Neighbors0 CellState = iota - 2
	Neighbors1
	Neighbors2
	Neighbors3
	Neighbors4
	Neighbors5
	Neighbors6
	Neighbors7
	Neighbors8
)

// Neighbors returns the state of an open cell with n mined neighbors.
func Neighbors(n int) CellState {
	return CellState(n)
}

// Count reports the neighbor count of an open safe cell.
func (s CellState) Count() (int, bool) {
	if Neighbors0 <= s && s <= Neighbors8 {
		return int(s), true
	}
	return 0, false
}

func (s CellState) String() string {
	switch {
	case s == Closed:
		return " "
	case s == Mine:
		return "*"
	case Neighbors0 <= s && s <= Neighbors8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// FormatField renders a snapshot one row per line.
func FormatField(grid [][]CellState) string {
	var b strings.Builder
	for _, row := range grid {
		for _, s := range row {
			fmt.Fprint(&b, s.String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

type Outcome uint8

const (
	InProgress Outcome = iota
	Win
	Lose
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in_progress"
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return "unknown"
	}
}

// [Outcome] implements [encoding.TextMarshaler]
func (o Outcome) MarshalText() ([]byte, error) {
	if o > Lose {
		return nil, fmt.Errorf("invalid outcome %d", o)
	}
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "in_progress":
		return InProgress, nil
	case "win":
		return Win, nil
	case "lose":
		return Lose, nil
	}
	return InProgress, fmt.Errorf("unknown outcome %q", s)
}
