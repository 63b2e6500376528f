// Package server provides the HTTP REST API for the resume coaching assistant.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-coach/internal/ingest"
	"github.com/jonathan/resume-coach/internal/server/middleware"
	"github.com/jonathan/resume-coach/internal/store"
	"github.com/jonathan/resume-coach/internal/types"
)

// SessionStore is the persistence surface the session handlers depend
// on. *store.Store satisfies it; tests provide fakes.
type SessionStore interface {
	CreateSession(ctx context.Context, userID uuid.UUID, state *types.ConversationState) (uuid.UUID, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*store.Session, error)
	SaveSessionState(ctx context.Context, sessionID uuid.UUID, state *types.ConversationState) error
	ListSessions(ctx context.Context, userID uuid.UUID, limit int) ([]store.SessionSummary, error)
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error
}

// handleCreateSession starts a new conversation for the authenticated
// user. The request body is optional: a missing resume or JD falls back
// to the built-in demo seed. The response carries the assistant's
// opening greeting.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resume := req.ResumeSections
	if len(resume) == 0 {
		resume = ingest.DemoResume()
	}
	jobText := req.JDSummary
	if jobText == "" {
		jobText = ingest.DemoJobDescription()
	}

	state := ingest.BootstrapState(r.Context(), s.llmClient, resume, jobText)

	// Run the opening turn so the response includes the greeting.
	if err := s.engine.RunTurn(r.Context(), state); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "conversation state error: "+err.Error())
		return
	}

	id, err := s.sessions.CreateSession(r.Context(), userID, state)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	s.jsonResponse(w, http.StatusCreated, types.SessionResponse{
		ID:             id,
		CurrentSection: state.CurrentSection,
		Messages:       state.LastAssistantMessages(),
	})
}

// handlePostMessage appends one user message to a session and drives
// the conversation a full turn. The response carries the assistant
// messages produced by the turn.
func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadOwnedSession(w, r)
	if !ok {
		return
	}

	var req types.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	sess.State.AppendMessage(types.RoleUser, req.Content)
	if err := s.engine.RunTurn(r.Context(), sess.State); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "conversation state error: "+err.Error())
		return
	}

	if err := s.sessions.SaveSessionState(r.Context(), sess.ID, sess.State); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.SessionResponse{
		ID:             sess.ID,
		CurrentSection: sess.State.CurrentSection,
		Messages:       sess.State.LastAssistantMessages(),
	})
}

// handleGetSession returns a session with its full transcript.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadOwnedSession(w, r)
	if !ok {
		return
	}

	s.jsonResponse(w, http.StatusOK, types.SessionResponse{
		ID:             sess.ID,
		CurrentSection: sess.State.CurrentSection,
		Messages:       sess.State.Context,
	})
}

// handleListSessions lists the authenticated user's sessions, newest first.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	sessions, err := s.sessions.ListSessions(r.Context(), userID, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	if sessions == nil {
		sessions = []store.SessionSummary{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"sessions": sessions})
}

// handleDeleteSession removes a session.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadOwnedSession(w, r)
	if !ok {
		return
	}

	if err := s.sessions.DeleteSession(r.Context(), sess.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// loadOwnedSession parses the {id} path value, loads the session, and
// verifies the authenticated user owns it. On failure it writes the
// error response and returns ok=false.
func (s *Server) loadOwnedSession(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid session ID")
		return nil, false
	}

	sess, err := s.sessions.GetSession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to get session")
		return nil, false
	}
	if sess == nil {
		notFound := &ErrSessionNotFound{SessionID: sessionID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return nil, false
	}
	if sess.UserID != userID {
		forbidden := &ErrForbidden{}
		s.errorResponse(w, HTTPStatus(forbidden), forbidden.Error())
		return nil, false
	}
	return sess, true
}
