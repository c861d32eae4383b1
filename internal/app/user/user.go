/*
Package user defines the user model and its data access layer.

The chat subsystem treats users as read-only identity records; account
creation and login live behind the REST auth endpoints.
*/
package user

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"footchat/internal/app/db"
	"footchat/internal/pkg/errs"
)

// User is an account record. PasswordHash and the moderation flags never
// leave the server in JSON form.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	FavoriteClub string    `json:"favorite_club,omitempty"`
	Active       bool      `json:"is_active"`
	Banned       bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store provides user persistence on top of the shared connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a user store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const userColumns = `id, username, email, password_hash, avatar_url, favorite_club, is_active, is_banned, created_at`

// scanUser reads one user row, converting nullable text columns.
func scanUser(row pgx.Row) (*User, error) {
	var u User
	var avatar, club pgtype.Text

	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &avatar, &club, &u.Active, &u.Banned, &u.CreatedAt)
	if err != nil {
		return nil, err
	}

	u.AvatarURL = avatar.String
	u.FavoriteClub = club.String

	return &u, nil
}

// GetByID loads a user by id.
func (s *Store) GetByID(ctx context.Context, id int64) (*User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NewError(errs.ErrUserNotFound)
		}
		return nil, err
	}

	return u, nil
}

// GetByEmail loads a user by email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	u, err := scanUser(row)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NewError(errs.ErrUserNotFound)
		}
		return nil, err
	}

	return u, nil
}

// Create inserts a new account. Username and email collisions are reported
// as distinct coded errors.
func (s *Store) Create(ctx context.Context, username, email, passwordHash, favoriteClub string) (*User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, favorite_club)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING `+userColumns,
		username, email, passwordHash, favoriteClub)

	u, err := scanUser(row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, s.classifyTakenIdentity(ctx, username)
		}
		return nil, err
	}

	return u, nil
}

// classifyTakenIdentity decides which unique constraint a registration hit.
func (s *Store) classifyTakenIdentity(ctx context.Context, username string) error {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err == nil && exists {
		return errs.NewError(errs.ErrUsernameTaken)
	}
	return errs.NewError(errs.ErrEmailTaken)
}

// UpdateAvatar sets the avatar key for a user and returns the updated record.
func (s *Store) UpdateAvatar(ctx context.Context, id int64, avatarURL string) (*User, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE users SET avatar_url = NULLIF($2, ''), updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, avatarURL)

	u, err := scanUser(row)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NewError(errs.ErrUserNotFound)
		}
		return nil, err
	}

	return u, nil
}
