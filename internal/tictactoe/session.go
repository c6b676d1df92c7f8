package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type Status string

const (
	StatusAwaitingPlayers Status = "awaiting_players"
	StatusInRound         Status = "in_round"
	StatusRoundEnded      Status = "round_ended"
)

type OutcomeKind string

const (
	OutcomeNone OutcomeKind = "none"
	OutcomeWin  OutcomeKind = "win"
	OutcomeTie  OutcomeKind = "tie"
)

const (
	seatNone = iota
	seatPlayer1
	seatPlayer2
)

const cellCount = entity.Size * entity.Size

var ErrUnknownStatus = errors.New("unknown session status")

// Outcome is how the current round stands. Winner is set only for OutcomeWin.
type Outcome struct {
	Kind   OutcomeKind
	Winner *entity.Player

	seat int
}

// TurnResult describes what a single MakeTurn call did.
type TurnResult struct {
	// Ignored is true when the cell was already taken and nothing changed.
	Ignored bool
	Row     int
	Col     int
	Marker  entity.Marker
	Outcome Outcome
}

type Scores struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
	Ties    int `json:"ties"`
}

// Session is a hot-seat game between two players spanning several rounds.
// It is not safe for concurrent use.
type Session struct {
	id     string
	policy StarterPolicy

	board   entity.Board
	player1 *entity.Player
	player2 *entity.Player

	current   int
	starter   int
	scores    Scores
	turnCount int
	round     int
	status    Status
	result    Outcome
}

func NewSession(id string, policy StarterPolicy) *Session {
	if policy == "" {
		policy = StarterFirstPlayer
	}

	return &Session{
		id:     id,
		policy: policy,
		status: StatusAwaitingPlayers,
		result: Outcome{Kind: OutcomeNone},
	}
}

// AddPlayers creates player 1 (X) and player 2 (O) and starts the first round.
// On a validation error the session is left untouched.
func (that *Session) AddPlayers(name1, name2 string) error {
	if that.status != StatusAwaitingPlayers {
		return apperror.ErrPlayersAlreadyAdded
	}

	player1, err := entity.NewPlayer(name1, string(entity.MarkerX))
	if err != nil {
		return fmt.Errorf("player 1: %w", err)
	}

	player2, err := entity.NewPlayer(name2, string(entity.MarkerO))
	if err != nil {
		return fmt.Errorf("player 2: %w", err)
	}

	that.player1 = player1
	that.player2 = player2
	that.round = 0
	that.startRound(seatPlayer1)

	return nil
}

func (that *Session) AddDefaultPlayers() error {
	return that.AddPlayers(entity.DefaultPlayer1Name, entity.DefaultPlayer2Name)
}

// MakeTurn puts the current player's marker into (row, col).
// A click on a taken cell is ignored rather than reported as an error.
func (that *Session) MakeTurn(row, col int) (TurnResult, error) {
	if err := that.ConfirmInRound(); err != nil {
		return TurnResult{}, err
	}

	player := that.CurrentPlayer()

	if err := that.board.Place(player.Marker(), row, col); err != nil {
		if errors.Is(err, apperror.ErrCellOccupied) {
			return TurnResult{Ignored: true, Row: row, Col: col, Outcome: that.result}, nil
		}

		return TurnResult{}, fmt.Errorf("invalid turn: %w", err)
	}

	that.turnCount++

	switch {
	case that.board.IsWinningMove(row, col):
		that.finishWithWin()
	case that.turnCount == cellCount:
		that.finishWithTie()
	default:
		that.current = otherSeat(that.current)
	}

	return TurnResult{
		Row:     row,
		Col:     col,
		Marker:  player.Marker(),
		Outcome: that.result,
	}, nil
}

// NextRound clears the board and keeps players and scores.
func (that *Session) NextRound() error {
	if that.status == StatusAwaitingPlayers {
		return apperror.ErrGameIsNotStarted
	}

	that.startRound(that.policy.nextStarter(that.starter, that.result))

	return nil
}

// ResetGame forgets the players and zeroes every counter.
func (that *Session) ResetGame() {
	that.board.Reset()
	that.player1 = nil
	that.player2 = nil
	that.current = seatNone
	that.starter = seatNone
	that.scores = Scores{}
	that.turnCount = 0
	that.round = 0
	that.status = StatusAwaitingPlayers
	that.result = Outcome{Kind: OutcomeNone}
}

func (that *Session) ConfirmInRound() error {
	switch that.status {
	case StatusInRound:
		return nil
	case StatusAwaitingPlayers:
		return apperror.ErrGameIsNotStarted
	case StatusRoundEnded:
		return apperror.ErrRoundFinished
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStatus, that.status)
	}
}

func (that *Session) startRound(starter int) {
	that.board.Reset()
	that.turnCount = 0
	that.round++
	that.starter = starter
	that.current = starter
	that.status = StatusInRound
	that.result = Outcome{Kind: OutcomeNone}
}

func (that *Session) finishWithWin() {
	if that.current == seatPlayer1 {
		that.scores.Player1++
	} else {
		that.scores.Player2++
	}

	that.status = StatusRoundEnded
	that.result = Outcome{Kind: OutcomeWin, Winner: that.playerAt(that.current), seat: that.current}
}

func (that *Session) finishWithTie() {
	that.scores.Ties++
	that.status = StatusRoundEnded
	that.result = Outcome{Kind: OutcomeTie}
}

func (that *Session) playerAt(seat int) *entity.Player {
	switch seat {
	case seatPlayer1:
		return that.player1
	case seatPlayer2:
		return that.player2
	default:
		return nil
	}
}

func (that *Session) ID() string {
	return that.id
}

func (that *Session) Policy() StarterPolicy {
	return that.policy
}

func (that *Session) Status() Status {
	return that.status
}

// Board returns a copy of the cells.
func (that *Session) Board() entity.Grid {
	return that.board.Snapshot()
}

func (that *Session) Player1() *entity.Player {
	return that.player1
}

func (that *Session) Player2() *entity.Player {
	return that.player2
}

// CurrentPlayer is nil while the session waits for players.
func (that *Session) CurrentPlayer() *entity.Player {
	return that.playerAt(that.current)
}

func (that *Session) Scores() Scores {
	return that.scores
}

func (that *Session) TurnCount() int {
	return that.turnCount
}

func (that *Session) Round() int {
	return that.round
}

func (that *Session) Result() Outcome {
	return that.result
}

// Clone returns an independent copy. Players are immutable and shared.
func (that *Session) Clone() *Session {
	clone := *that
	return &clone
}
