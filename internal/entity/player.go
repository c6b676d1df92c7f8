package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

const (
	DefaultPlayer1Name = "Player 1"
	DefaultPlayer2Name = "Player 2"

	maxNameLength = 32
)

// Player is immutable once created. Name and Marker are checked once here,
// so the board trusts the marker it is given.
type Player struct {
	name   string
	marker Marker
}

func NewPlayer(name, marker string) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name is empty", apperror.ErrValidation)
	}

	if len([]rune(name)) > maxNameLength {
		return nil, fmt.Errorf("%w: player name is longer than %d characters", apperror.ErrValidation, maxNameLength)
	}

	mark, err := ParseMarker(marker)
	if err != nil {
		return nil, err
	}

	return &Player{name: name, marker: mark}, nil
}

func (that *Player) Name() string {
	return that.name
}

func (that *Player) Marker() Marker {
	return that.marker
}
