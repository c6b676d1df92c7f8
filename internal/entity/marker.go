package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

// Marker is the symbol a player puts into a cell.
type Marker string

const (
	EmptyCell Marker = ""
	MarkerX   Marker = "X"
	MarkerO   Marker = "O"
)

// ParseMarker accepts "x", "X", "o" or "O".
func ParseMarker(value string) (Marker, error) {
	switch marker := Marker(strings.ToUpper(strings.TrimSpace(value))); marker {
	case MarkerX, MarkerO:
		return marker, nil
	default:
		return EmptyCell, fmt.Errorf("%w: invalid marker %q", apperror.ErrValidation, value)
	}
}

func (that Marker) IsValid() bool {
	return that == MarkerX || that == MarkerO
}

func (that Marker) Opponent() Marker {
	switch that {
	case MarkerX:
		return MarkerO
	case MarkerO:
		return MarkerX
	default:
		return EmptyCell
	}
}
