package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const maxBodySize = 1 << 10

var errBadRequest = errors.New("bad request")

type sessionUseCase interface {
	StartSession(ctx context.Context, name1, name2 string) (*tictactoe.Session, error)
	GetSession(ctx context.Context, id string) (*tictactoe.Session, error)
	AddPlayers(ctx context.Context, id, name1, name2 string) (*tictactoe.Session, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*tictactoe.Session, tictactoe.TurnResult, error)
	NextRound(ctx context.Context, id string) (*tictactoe.Session, error)
	ResetGame(ctx context.Context, id string) (*tictactoe.Session, error)
	EndSession(ctx context.Context, id string) error
}

type SessionHandlers struct {
	logger   *slog.Logger
	sessions sessionUseCase
}

func NewSessionHandlers(logger *slog.Logger, sessions sessionUseCase) *SessionHandlers {
	return &SessionHandlers{
		logger:   logger.With("component", "session_handlers"),
		sessions: sessions,
	}
}

func (that *SessionHandlers) StartSession(w http.ResponseWriter, r *http.Request) {
	var req playersRequest
	if err := decodeBody(r, &req, true); err != nil {
		that.writeError(w, "StartSession", err)
		return
	}

	session, err := that.sessions.StartSession(r.Context(), req.Player1, req.Player2)
	if err != nil {
		that.writeError(w, "StartSession", err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionView(session))
}

func (that *SessionHandlers) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, "GetSession", err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionView(session))
}

func (that *SessionHandlers) AddPlayers(w http.ResponseWriter, r *http.Request) {
	var req playersRequest
	if err := decodeBody(r, &req, true); err != nil {
		that.writeError(w, "AddPlayers", err)
		return
	}

	session, err := that.sessions.AddPlayers(r.Context(), chi.URLParam(r, "sessionID"), req.Player1, req.Player2)
	if err != nil {
		that.writeError(w, "AddPlayers", err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionView(session))
}

func (that *SessionHandlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeBody(r, &req, false); err != nil {
		that.writeError(w, "MakeTurn", err)
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeError(w, "MakeTurn", fmt.Errorf("%w: row and col are required", errBadRequest))
		return
	}

	session, result, err := that.sessions.MakeTurn(r.Context(), chi.URLParam(r, "sessionID"), *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, "MakeTurn", err)
		return
	}

	writeJSON(w, http.StatusOK, turnResponse{
		Session: toSessionView(session),
		Ignored: result.Ignored,
	})
}

func (that *SessionHandlers) NextRound(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.NextRound(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, "NextRound", err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionView(session))
}

func (that *SessionHandlers) ResetGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.ResetGame(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, "ResetGame", err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionView(session))
}

func (that *SessionHandlers) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.EndSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		that.writeError(w, "EndSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *SessionHandlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	that.logger.Debug("request rejected", "method", method, "status", status, "error", err)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, apperror.ErrValidation),
		errors.Is(err, apperror.ErrInvalidPosition):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameIsNotStarted),
		errors.Is(err, apperror.ErrRoundFinished),
		errors.Is(err, apperror.ErrPlayersAlreadyAdded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON body into dst. An empty body is accepted when
// allowEmpty is set.
func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}

		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
