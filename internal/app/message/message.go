/*
Package message implements durable, transactional message persistence.

Appends either commit a complete row with a server-assigned id and timestamp
or persist nothing. History is returned oldest-first, ordered by
(created_at, id) so rows sharing a timestamp keep a stable order. Deletes are
author-only with no admin override.
*/
package message

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"footchat/internal/app/db"
	"footchat/internal/pkg/errs"
)

const (
	// MaxListLimit is the hard server-side cap on history page size.
	MaxListLimit = 100

	// DefaultListLimit is used when the caller does not request a page size.
	DefaultListLimit = 50

	// MaxContentBytes caps message content size.
	MaxContentBytes = 5000
)

// Message is one chat message. Username and AvatarURL are denormalized from
// the author row for delivery to clients.
type Message struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CommunityID int64     `json:"community_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// NormalizeContent trims content and validates it, returning the trimmed
// value. Empty-after-trim and oversized content are rejected before any
// store call happens.
func NormalizeContent(content string) (string, *errs.CustomError) {
	trimmed := strings.TrimSpace(content)

	if trimmed == "" {
		return "", errs.NewError(errs.ErrEmptyContent)
	}

	if len(trimmed) > MaxContentBytes {
		return "", errs.NewError(errs.ErrMessageTooLong)
	}

	return trimmed, nil
}

// ClampLimit bounds a requested page size to (0, MaxListLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// Store provides message persistence.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a message store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Append validates content and commits one message row, returning it with
// the server-assigned id and timestamp. The insert is a single atomic
// statement; a failed append persists nothing.
func (s *Store) Append(ctx context.Context, content string, userID, communityID int64) (*Message, error) {
	trimmed, customErr := NormalizeContent(content)
	if customErr != nil {
		return nil, customErr
	}

	m := &Message{
		Content:     trimmed,
		UserID:      userID,
		CommunityID: communityID,
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO messages (content, user_id, community_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		trimmed, userID, communityID).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, errs.NewError(errs.ErrCommunityNotFound)
		}
		return nil, errs.NewError(errs.ErrPersistence)
	}

	return m, nil
}

// List returns a history page for a community, oldest first, ordered by
// (created_at, id). The limit is clamped server-side regardless of the
// caller's request.
func (s *Store) List(ctx context.Context, communityID int64, limit, offset int) ([]Message, error) {
	limit = ClampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	rows, err := s.pool.Query(ctx, `
		SELECT m.id, m.content, m.user_id, u.username, u.avatar_url, m.community_id, m.created_at
		FROM messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.community_id = $1
		ORDER BY m.created_at ASC, m.id ASC
		LIMIT $2 OFFSET $3`,
		communityID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]Message, 0, limit)

	for rows.Next() {
		var m Message
		var avatar pgtype.Text

		if err := rows.Scan(&m.ID, &m.Content, &m.UserID, &m.Username, &avatar, &m.CommunityID, &m.CreatedAt); err != nil {
			return nil, err
		}

		m.AvatarURL = avatar.String
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// Count returns the total number of messages in a community.
func (s *Store) Count(ctx context.Context, communityID int64) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM messages WHERE community_id = $1`,
		communityID).Scan(&count)
	return count, err
}

// Delete removes a message if and only if the requester authored it. The
// author check and the delete run in one transaction so a concurrent delete
// cannot turn an Unauthorized into a silent success.
func (s *Store) Delete(ctx context.Context, messageID, requesterID int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var authorID int64
	err = tx.QueryRow(ctx, `
		SELECT user_id FROM messages WHERE id = $1 FOR UPDATE`,
		messageID).Scan(&authorID)
	if err != nil {
		if db.IsNoRows(err) {
			return errs.NewError(errs.ErrMessageNotFound)
		}
		return err
	}

	if authorID != requesterID {
		return errs.NewError(errs.ErrNotMessageAuthor)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM messages WHERE id = $1`, messageID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
