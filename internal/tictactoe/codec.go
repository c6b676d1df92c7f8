package tictactoe

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type playerState struct {
	Name   string        `json:"name"`
	Marker entity.Marker `json:"marker"`
}

type outcomeState struct {
	Kind OutcomeKind `json:"kind"`
	Seat int         `json:"seat,omitempty"`
}

// sessionState is the stored form of a Session.
type sessionState struct {
	ID        string        `json:"id"`
	Policy    StarterPolicy `json:"starter_policy"`
	Board     entity.Board  `json:"board"`
	Player1   *playerState  `json:"player1,omitempty"`
	Player2   *playerState  `json:"player2,omitempty"`
	Current   int           `json:"current"`
	Starter   int           `json:"starter"`
	Scores    Scores        `json:"scores"`
	TurnCount int           `json:"turn_count"`
	Round     int           `json:"round"`
	Status    Status        `json:"status"`
	Result    outcomeState  `json:"result"`
}

func (that *Session) MarshalJSON() ([]byte, error) {
	state := sessionState{
		ID:        that.id,
		Policy:    that.policy,
		Board:     that.board,
		Player1:   toPlayerState(that.player1),
		Player2:   toPlayerState(that.player2),
		Current:   that.current,
		Starter:   that.starter,
		Scores:    that.scores,
		TurnCount: that.turnCount,
		Round:     that.round,
		Status:    that.status,
		Result:    outcomeState{Kind: that.result.Kind, Seat: that.result.seat},
	}

	return json.Marshal(state)
}

func (that *Session) UnmarshalJSON(data []byte) error {
	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to unmarshal session: %w", err)
	}

	restored, err := fromState(state)
	if err != nil {
		return err
	}

	*that = *restored

	return nil
}

func fromState(state sessionState) (*Session, error) {
	policy, err := ParseStarterPolicy(string(state.Policy))
	if err != nil {
		return nil, err
	}

	session := NewSession(state.ID, policy)

	switch state.Status {
	case StatusAwaitingPlayers:
		return session, nil
	case StatusInRound, StatusRoundEnded:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatus, state.Status)
	}

	if session.player1, err = fromPlayerState(state.Player1, entity.MarkerX); err != nil {
		return nil, fmt.Errorf("player 1: %w", err)
	}

	if session.player2, err = fromPlayerState(state.Player2, entity.MarkerO); err != nil {
		return nil, fmt.Errorf("player 2: %w", err)
	}

	if !isSeat(state.Current) || !isSeat(state.Starter) {
		return nil, fmt.Errorf("%w: invalid seat", apperror.ErrValidation)
	}

	if state.TurnCount < 0 || state.TurnCount > cellCount {
		return nil, fmt.Errorf("%w: invalid turn count %d", apperror.ErrValidation, state.TurnCount)
	}

	session.board = state.Board
	session.current = state.Current
	session.starter = state.Starter
	session.scores = state.Scores
	session.turnCount = state.TurnCount
	session.round = state.Round
	session.status = state.Status

	switch state.Result.Kind {
	case OutcomeWin:
		if !isSeat(state.Result.Seat) {
			return nil, fmt.Errorf("%w: invalid winner seat", apperror.ErrValidation)
		}
		session.result = Outcome{Kind: OutcomeWin, Winner: session.playerAt(state.Result.Seat), seat: state.Result.Seat}
	case OutcomeTie:
		session.result = Outcome{Kind: OutcomeTie}
	default:
		session.result = Outcome{Kind: OutcomeNone}
	}

	return session, nil
}

func toPlayerState(player *entity.Player) *playerState {
	if player == nil {
		return nil
	}

	return &playerState{Name: player.Name(), Marker: player.Marker()}
}

func fromPlayerState(state *playerState, marker entity.Marker) (*entity.Player, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: player is missing", apperror.ErrValidation)
	}

	if state.Marker != marker {
		return nil, fmt.Errorf("%w: expected marker %s, got %q", apperror.ErrValidation, marker, state.Marker)
	}

	return entity.NewPlayer(state.Name, string(state.Marker))
}

func isSeat(seat int) bool {
	return seat == seatPlayer1 || seat == seatPlayer2
}
