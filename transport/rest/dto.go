package rest

import (
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type playersRequest struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

type turnRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type playerView struct {
	Name   string        `json:"name"`
	Marker entity.Marker `json:"marker"`
}

type resultView struct {
	Kind   tictactoe.OutcomeKind `json:"kind"`
	Winner *playerView           `json:"winner,omitempty"`
}

type sessionView struct {
	ID            string                  `json:"id"`
	Status        tictactoe.Status        `json:"status"`
	StarterPolicy tictactoe.StarterPolicy `json:"starter_policy"`
	Board         entity.Grid             `json:"board"`
	Player1       *playerView             `json:"player1,omitempty"`
	Player2       *playerView             `json:"player2,omitempty"`
	CurrentPlayer *playerView             `json:"current_player,omitempty"`
	Scores        tictactoe.Scores        `json:"scores"`
	Round         int                     `json:"round"`
	TurnCount     int                     `json:"turn_count"`
	Result        resultView              `json:"result"`
}

type turnResponse struct {
	Session sessionView `json:"session"`
	Ignored bool        `json:"ignored"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toSessionView(session *tictactoe.Session) sessionView {
	result := session.Result()

	return sessionView{
		ID:            session.ID(),
		Status:        session.Status(),
		StarterPolicy: session.Policy(),
		Board:         session.Board(),
		Player1:       toPlayerView(session.Player1()),
		Player2:       toPlayerView(session.Player2()),
		CurrentPlayer: toPlayerView(session.CurrentPlayer()),
		Scores:        session.Scores(),
		Round:         session.Round(),
		TurnCount:     session.TurnCount(),
		Result: resultView{
			Kind:   result.Kind,
			Winner: toPlayerView(result.Winner),
		},
	}
}

func toPlayerView(player *entity.Player) *playerView {
	if player == nil {
		return nil
	}

	return &playerView{Name: player.Name(), Marker: player.Marker()}
}
