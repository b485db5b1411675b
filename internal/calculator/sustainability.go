package calculator

import (
	"errors"
	"math"
	"strings"
)

// BarWidth is the number of cells in a sustainability bar.
const BarWidth = 10

// SustainabilityPercent returns round(100 * score / max).
func SustainabilityPercent(score, max int) (int, error) {
	if max <= 0 {
		return 0, errors.New("max must be positive")
	}
	return int(math.Round(100 * float64(score) / float64(max))), nil
}

// FilledCells returns how many of width cells a score fills, clamped to [0, width].
func FilledCells(score, max, width int) (int, error) {
	if max <= 0 {
		return 0, errors.New("max must be positive")
	}
	if width <= 0 {
		return 0, errors.New("width must be positive")
	}
	n := int(math.Round(float64(score) * float64(width) / float64(max)))
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	return n, nil
}

// SustainabilityBar renders a BarWidth-cell indicator proportional to score/max.
func SustainabilityBar(score, max int, full, empty string) (string, error) {
	n, err := FilledCells(score, max, BarWidth)
	if err != nil {
		return "", err
	}
	return strings.Repeat(full, n) + strings.Repeat(empty, BarWidth-n), nil
}
