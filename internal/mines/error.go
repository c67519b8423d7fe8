package mines

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds   = errors.New("cell is out of bounds")
	ErrGameFinished  = errors.New("game is already finished")
	ErrInvalidLayout = errors.New("invalid mine layout")
	ErrCorruptState  = errors.New("corrupt game state")
)

type OutOfBoundsError struct {
	Point      Point
	Rows, Cols int
}

// [OutOfBoundsError] implements [error]
func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"cell %s is out of bounds of %dx%d field", e.Point, e.Rows, e.Cols,
	)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
