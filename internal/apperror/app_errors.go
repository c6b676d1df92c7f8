package apperror

import "errors"

var (
	ErrInvalidPosition     = errors.New("position is out of the board")
	ErrCellOccupied        = errors.New("cell is already occupied")
	ErrValidation          = errors.New("validation failed")
	ErrGameIsNotStarted    = errors.New("game is not started")
	ErrRoundFinished       = errors.New("round is already finished")
	ErrPlayersAlreadyAdded = errors.New("players are already added")
	ErrSessionNotFound     = errors.New("session not found")
)
