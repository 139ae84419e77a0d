package geometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNegativeDimension = errors.New("negative boundary dimension")
	ErrNotFinite         = errors.New("boundary is not finite")
)

func isFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// ValidateFinite checks that the position and the far corner of bound are
// representable, so Vertices and Center hold no infinities.
func ValidateFinite(bound RectangleBoundary) error {
	if !isFinite(bound.position.X) || !isFinite(bound.position.Y) {
		return fmt.Errorf("position %v: %w", bound.position, ErrNotFinite)
	}
	if !isFinite(bound.xDim) || !isFinite(bound.position.X+bound.xDim) {
		return fmt.Errorf("x extent %v from %v: %w", bound.xDim, bound.position.X, ErrNotFinite)
	}
	if !isFinite(bound.yDim) || !isFinite(bound.position.Y+bound.yDim) {
		return fmt.Errorf("y extent %v from %v: %w", bound.yDim, bound.position.Y, ErrNotFinite)
	}
	return nil
}

// Validate checks that bound is finite and both of its dimensions are non negative.
func Validate(bound RectangleBoundary) error {
	if err := ValidateFinite(bound); err != nil {
		return err
	}
	if bound.xDim < 0 {
		return fmt.Errorf("x dimension %v: %w", bound.xDim, ErrNegativeDimension)
	}
	if bound.yDim < 0 {
		return fmt.Errorf("y dimension %v: %w", bound.yDim, ErrNegativeDimension)
	}
	return nil
}

// NewValidatedRectangleBoundary is NewRectangleBoundary for callers that want
// negative or overflowing lengths rejected instead of stored.
func NewValidatedRectangleBoundary(xLength, yLength float64, position Point2D) (RectangleBoundary, error) {
	bound := NewRectangleBoundary(xLength, yLength, position)
	if err := Validate(bound); err != nil {
		return RectangleBoundary{}, err
	}
	return bound, nil
}
