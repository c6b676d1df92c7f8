package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *tictactoe.Session) error
	GetByID(ctx context.Context, id string) (*tictactoe.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// SessionManager applies one session operation at a time:
// load from the repository, change, save.
type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	policy      tictactoe.StarterPolicy
	newID       func() string

	mu sync.Mutex
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo, policy tictactoe.StarterPolicy) *SessionManager {
	return &SessionManager{
		logger:      logger.With("component", "session_manager"),
		sessionRepo: sessionRepo,
		policy:      policy,
		newID:       uuid.NewString,
	}
}

// StartSession creates a session and adds both players. Two empty names mean
// the default ones.
func (that *SessionManager) StartSession(ctx context.Context, name1, name2 string) (*tictactoe.Session, error) {
	log := that.logger.With("method", "StartSession")

	session := tictactoe.NewSession(that.newID(), that.policy)

	if err := addPlayers(session, name1, name2); err != nil {
		return nil, fmt.Errorf("failed to add players: %w", err)
	}

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info("session started", "sessionID", session.ID(), "policy", session.Policy())

	return session, nil
}

func (that *SessionManager) GetSession(ctx context.Context, id string) (*tictactoe.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// AddPlayers seats new players after a reset.
func (that *SessionManager) AddPlayers(ctx context.Context, id, name1, name2 string) (*tictactoe.Session, error) {
	return that.update(ctx, id, "AddPlayers", func(session *tictactoe.Session) error {
		return addPlayers(session, name1, name2)
	})
}

func (that *SessionManager) MakeTurn(ctx context.Context, id string, row, col int) (*tictactoe.Session, tictactoe.TurnResult, error) {
	var result tictactoe.TurnResult

	session, err := that.update(ctx, id, "MakeTurn", func(session *tictactoe.Session) error {
		var err error
		result, err = session.MakeTurn(row, col)
		return err
	})
	if err != nil {
		return nil, tictactoe.TurnResult{}, err
	}

	log := that.logger.With("method", "MakeTurn", "sessionID", id)

	switch {
	case result.Ignored:
		log.Debug("cell is occupied, turn ignored", "row", row, "col", col)
	case result.Outcome.Kind == tictactoe.OutcomeWin:
		log.Info("round won", "round", session.Round(), "winner", result.Outcome.Winner.Name())
	case result.Outcome.Kind == tictactoe.OutcomeTie:
		log.Info("round tied", "round", session.Round())
	}

	return session, result, nil
}

func (that *SessionManager) NextRound(ctx context.Context, id string) (*tictactoe.Session, error) {
	return that.update(ctx, id, "NextRound", func(session *tictactoe.Session) error {
		return session.NextRound()
	})
}

func (that *SessionManager) ResetGame(ctx context.Context, id string) (*tictactoe.Session, error) {
	return that.update(ctx, id, "ResetGame", func(session *tictactoe.Session) error {
		session.ResetGame()
		return nil
	})
}

func (that *SessionManager) EndSession(ctx context.Context, id string) error {
	log := that.logger.With("method", "EndSession", "sessionID", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	log.Info("session ended")

	return nil
}

// update loads the session, applies change and saves it. Nothing is saved
// when change fails.
func (that *SessionManager) update(ctx context.Context, id, method string, change func(*tictactoe.Session) error) (*tictactoe.Session, error) {
	log := that.logger.With("method", method, "sessionID", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err = change(session); err != nil {
		log.Debug("session operation rejected", "error", err)
		return nil, fmt.Errorf("failed to apply %s: %w", method, err)
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}

func addPlayers(session *tictactoe.Session, name1, name2 string) error {
	if name1 == "" && name2 == "" {
		return session.AddDefaultPlayers()
	}

	return session.AddPlayers(name1, name2)
}
