package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-coach/internal/types"
)

// Session is one persisted conversation: its owner plus the full
// conversation state snapshot.
type Session struct {
	ID        uuid.UUID                `json:"id"`
	UserID    uuid.UUID                `json:"user_id"`
	State     *types.ConversationState `json:"state"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// SessionSummary is a lightweight view of a session for listing.
type SessionSummary struct {
	ID             uuid.UUID       `json:"id"`
	CurrentSection types.SectionID `json:"current_section,omitempty"`
	MessageCount   int             `json:"message_count"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateSession stores a new conversation state for a user and returns
// the session ID.
func (s *Store) CreateSession(ctx context.Context, userID uuid.UUID, state *types.ConversationState) (uuid.UUID, error) {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal session state: %w", err)
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO sessions (user_id, state)
		 VALUES ($1, $2)
		 RETURNING id`,
		userID, stateJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// GetSession retrieves a session with its full state. Returns
// (nil, nil) when not found.
func (s *Store) GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	var sess Session
	var stateJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, state, created_at, updated_at
		 FROM sessions WHERE id = $1`,
		sessionID,
	).Scan(&sess.ID, &sess.UserID, &stateJSON, &sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	state := types.NewConversationState()
	if err := json.Unmarshal(stateJSON, state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}
	sess.State = state
	return &sess, nil
}

// SaveSessionState overwrites a session's state snapshot.
func (s *Store) SaveSessionState(ctx context.Context, sessionID uuid.UUID, state *types.ConversationState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	result, err := s.pool.Exec(ctx,
		`UPDATE sessions SET state = $1, updated_at = NOW() WHERE id = $2`,
		stateJSON, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to save session state: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	return nil
}

// ListSessions retrieves a user's sessions, newest first.
func (s *Store) ListSessions(ctx context.Context, userID uuid.UUID, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id,
		        COALESCE(state->>'current_section', ''),
		        CASE WHEN jsonb_typeof(state->'context') = 'array'
		             THEN jsonb_array_length(state->'context') ELSE 0 END,
		        created_at, updated_at
		 FROM sessions WHERE user_id = $1
		 ORDER BY updated_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var section string
		if err := rows.Scan(&sum.ID, &section, &sum.MessageCount, &sum.CreatedAt, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sum.CurrentSection = types.SectionID(section)
		sessions = append(sessions, sum)
	}
	return sessions, nil
}

// DeleteSession removes a session.
func (s *Store) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	return nil
}
