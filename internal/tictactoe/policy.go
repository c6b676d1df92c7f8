package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

// StarterPolicy decides who opens the next round.
type StarterPolicy string

const (
	// StarterFirstPlayer always lets player 1 open a round.
	StarterFirstPlayer StarterPolicy = "first"
	// StarterAlternate swaps the opening player every round.
	StarterAlternate StarterPolicy = "alternate"
	// StarterLoser lets the loser of the last round open; a tie alternates.
	StarterLoser StarterPolicy = "loser"
)

func ParseStarterPolicy(value string) (StarterPolicy, error) {
	switch policy := StarterPolicy(value); policy {
	case "":
		return StarterFirstPlayer, nil
	case StarterFirstPlayer, StarterAlternate, StarterLoser:
		return policy, nil
	default:
		return "", fmt.Errorf("%w: unknown starter policy %q", apperror.ErrValidation, value)
	}
}

// nextStarter returns the index (1 or 2) of the player opening the next round.
func (that StarterPolicy) nextStarter(previous int, result Outcome) int {
	switch that {
	case StarterAlternate:
		return otherSeat(previous)
	case StarterLoser:
		if result.Kind == OutcomeWin {
			return otherSeat(result.seat)
		}
		return otherSeat(previous)
	default:
		return seatPlayer1
	}
}

func otherSeat(seat int) int {
	if seat == seatPlayer1 {
		return seatPlayer2
	}
	return seatPlayer1
}
