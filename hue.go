package main

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for inputs the palette cannot be derived from.
var ErrInvalidArgument = errors.New("invalid argument")

// GenerateHues samples steps hues from hueStart towards hueEnd.
//
// The spacing is (hueEnd-hueStart)/steps, so hueEnd itself is never produced:
// sampling 0..360 gives a full wheel without repeating red at the end.
// Values are neither rounded nor wrapped into [0, 360).
func GenerateHues(hueStart, hueEnd float64, steps int) ([]float64, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("steps must be at least 1, got %d: %w", steps, ErrInvalidArgument)
	}

	hues := make([]float64, steps)
	for i := range hues {
		hues[i] = hueStart + (hueEnd-hueStart)*float64(i)/float64(steps)
	}
	return hues, nil
}
