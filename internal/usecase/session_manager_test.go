package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

func newTestManager(repo sessionRepo, policy tictactoe.StarterPolicy) *SessionManager {
	manager := NewSessionManager(slog.New(slog.NewTextHandler(io.Discard, nil)), repo, policy)
	manager.newID = func() string { return "s1" }

	return manager
}

func startedSession(t *testing.T) *tictactoe.Session {
	t.Helper()

	session := tictactoe.NewSession("s1", tictactoe.StarterFirstPlayer)
	require.NoError(t, session.AddPlayers("Alice", "Bob"))

	return session
}

func TestSessionManager_StartSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates session with given names", func(t *testing.T) {
		// Given: a repository accepting writes
		repo := &mockSessionRepo{}
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*tictactoe.Session")).Return(nil).Once()
		manager := newTestManager(repo, tictactoe.StarterAlternate)

		// When: a session is started
		session, err := manager.StartSession(ctx, "Alice", "Bob")

		// Then: the session is stored in round 1 with the configured policy
		require.NoError(t, err)
		assert.Equal(t, "s1", session.ID())
		assert.Equal(t, tictactoe.StatusInRound, session.Status())
		assert.Equal(t, tictactoe.StarterAlternate, session.Policy())
		assert.Equal(t, "Alice", session.CurrentPlayer().Name())
		repo.AssertExpectations(t)
	})

	t.Run("Uses default names when none are given", func(t *testing.T) {
		repo := &mockSessionRepo{}
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*tictactoe.Session")).Return(nil).Once()
		manager := newTestManager(repo, tictactoe.StarterFirstPlayer)

		session, err := manager.StartSession(ctx, "", "")

		require.NoError(t, err)
		assert.Equal(t, "Player 1", session.Player1().Name())
		assert.Equal(t, "Player 2", session.Player2().Name())
	})

	t.Run("Validation error is not stored", func(t *testing.T) {
		// Given: a repository that must not be called
		repo := &mockSessionRepo{}
		manager := newTestManager(repo, tictactoe.StarterFirstPlayer)

		// When: only one name is given
		session, err := manager.StartSession(ctx, "Alice", "")

		// Then: ErrValidation is returned
		require.ErrorIs(t, err, apperror.ErrValidation)
		assert.Nil(t, session)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Returns error if repository fails", func(t *testing.T) {
		repo := &mockSessionRepo{}
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*tictactoe.Session")).Return(errRedisDown).Once()
		manager := newTestManager(repo, tictactoe.StarterFirstPlayer)

		session, err := manager.StartSession(ctx, "Alice", "Bob")

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, session)
	})
}

func TestSessionManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful turn is saved", func(t *testing.T) {
		// Given: a started session in the repository
		repo := &mockSessionRepo{}
		repo.On("GetByID", ctx, "s1").Return(startedSession(t), nil).Once()
		repo.On("CreateOrUpdate", ctx, mock.MatchedBy(func(s *tictactoe.Session) bool {
			return s.TurnCount() == 1 && s.CurrentPlayer().Name() == "Bob"
		})).Return(nil).Once()
		manager := newTestManager(repo, tictactoe.StarterFirstPlayer)

		// When: Alice plays the center
		session, result, err := manager.MakeTurn(ctx, "s1", 1, 1)

		// Then: the move is applied and saved
		require.NoError(t, err)
		assert.False(t, result.Ignored)
		assert.Equal(t, "Bob", session.CurrentPlayer().Name())
		repo.AssertExpectations(t)
	})

	t.Run("Invalid position is not saved", func(t *testing.T) {
		repo := &mockSessionRepo{}
		repo.On("GetByID", ctx, "s1").Return(startedSession(t), nil).Once()
		manager := newTestManager(repo, tictactoe.StarterFirstPlayer)

		session, _, err := manager.MakeTurn(ctx, "s1", 5, 5)

		require.ErrorIs(t, err, apperror.ErrInvalidPosition)
		assert.Nil(t, session)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Error if session not found", func(t *testing.T) {
		repo := &mockSessionRepo{}
		repo.On("GetByID", ctx, "nope").Return(nil, apperror.ErrSessionNotFound).Once()
		manager := newTestManager(repo, tictactoe.StarterFirstPlayer)

		_, _, err := manager.MakeTurn(ctx, "nope", 0, 0)

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestSessionManager_EndSession(t *testing.T) {
	ctx := context.Background()

	repo := &mockSessionRepo{}
	repo.On("DeleteByID", ctx, "s1").Return(nil).Once()
	manager := newTestManager(repo, tictactoe.StarterFirstPlayer)

	require.NoError(t, manager.EndSession(ctx, "s1"))
	repo.AssertExpectations(t)
}

func TestSessionManager_FullGame(t *testing.T) {
	ctx := context.Background()

	// Given: a manager over the in-memory repository
	manager := newTestManager(repository.NewMemorySessionRepository(0), tictactoe.StarterFirstPlayer)

	session, err := manager.StartSession(ctx, "Alice", "Bob")
	require.NoError(t, err)

	// When: Alice takes the top row
	var result tictactoe.TurnResult
	for _, move := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}} {
		session, result, err = manager.MakeTurn(ctx, "s1", move[0], move[1])
		require.NoError(t, err)
	}

	// Then: Alice wins and the score survives the next round
	assert.Equal(t, tictactoe.OutcomeWin, result.Outcome.Kind)
	assert.Equal(t, tictactoe.Scores{Player1: 1}, session.Scores())

	session, err = manager.NextRound(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, tictactoe.Scores{Player1: 1}, session.Scores())
	assert.Equal(t, 2, session.Round())

	// When: the game is reset
	session, err = manager.ResetGame(ctx, "s1")
	require.NoError(t, err)

	// Then: the scores are zeroed and players can be seated again
	assert.Equal(t, tictactoe.Scores{}, session.Scores())
	assert.Equal(t, tictactoe.StatusAwaitingPlayers, session.Status())

	_, _, err = manager.MakeTurn(ctx, "s1", 0, 0)
	require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)

	session, err = manager.AddPlayers(ctx, "s1", "Carol", "Dave")
	require.NoError(t, err)
	assert.Equal(t, "Carol", session.CurrentPlayer().Name())

	_, _, err = manager.MakeTurn(ctx, "s1", 0, 0)
	require.NoError(t, err)

	// When: Dave clicks the cell Carol took
	session, result, err = manager.MakeTurn(ctx, "s1", 0, 0)

	// Then: the click is ignored
	require.NoError(t, err)
	assert.True(t, result.Ignored)
	assert.Equal(t, 1, session.TurnCount())
}
