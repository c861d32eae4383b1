/*
Package community defines communities (chat rooms) and their membership store.

Membership rows are the single source of truth for room authorization: both
the REST API and the WebSocket gateway answer "may this user act in this
room?" through IsMember. Every membership mutation adjusts the community's
member_count inside the same transaction with an atomic increment, so the
counter cannot drift from the row it was changed with.
*/
package community

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"footchat/internal/app/db"
	"footchat/internal/pkg/errs"
)

// Membership roles.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Community is a chat room backed by a database row.
type Community struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ClubName    string    `json:"club_name,omitempty"`
	IsPublic    bool      `json:"is_public"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Member is one (user, community) membership row.
type Member struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	CommunityID int64     `json:"community_id"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

// Store provides community and membership persistence.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a community store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const communityColumns = `id, name, description, club_name, is_public, member_count, created_at`

func scanCommunity(row pgx.Row) (*Community, error) {
	var c Community
	var description, clubName pgtype.Text

	err := row.Scan(&c.ID, &c.Name, &description, &clubName, &c.IsPublic, &c.MemberCount, &c.CreatedAt)
	if err != nil {
		return nil, err
	}

	c.Description = description.String
	c.ClubName = clubName.String

	return &c, nil
}

// Create inserts a community and its creator's admin membership in one
// transaction. member_count starts at 1 for the creator.
func (s *Store) Create(ctx context.Context, name, description, clubName string, creatorID int64) (*Community, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO communities (name, description, club_name, member_count)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), 1)
		RETURNING `+communityColumns,
		name, description, clubName)

	c, err := scanCommunity(row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, errs.NewError(errs.ErrCommunityNameExists)
		}
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO community_members (user_id, community_id, role)
		VALUES ($1, $2, $3)`,
		creatorID, c.ID, RoleAdmin)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// List returns all public communities, newest first.
func (s *Store) List(ctx context.Context) ([]Community, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+communityColumns+` FROM communities
		WHERE is_public
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCommunities(rows)
}

// ListForUser returns the communities a user belongs to.
func (s *Store) ListForUser(ctx context.Context, userID int64) ([]Community, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT c.id, c.name, c.description, c.club_name, c.is_public, c.member_count, c.created_at
		FROM communities c
		JOIN community_members m ON m.community_id = c.id
		WHERE m.user_id = $1
		ORDER BY m.joined_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCommunities(rows)
}

func collectCommunities(rows pgx.Rows) ([]Community, error) {
	communities := make([]Community, 0)

	for rows.Next() {
		c, err := scanCommunity(rows)
		if err != nil {
			return nil, err
		}
		communities = append(communities, *c)
	}

	return communities, rows.Err()
}

// GetByID loads one community.
func (s *Store) GetByID(ctx context.Context, id int64) (*Community, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+communityColumns+` FROM communities WHERE id = $1`, id)

	c, err := scanCommunity(row)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, errs.NewError(errs.ErrCommunityNotFound)
		}
		return nil, err
	}

	return c, nil
}

// Join adds a membership row and increments member_count in one transaction.
// Joining twice is a benign conflict (ErrAlreadyMember), never a partial write.
func (s *Store) Join(ctx context.Context, communityID, userID int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO community_members (user_id, community_id)
		VALUES ($1, $2)`,
		userID, communityID)
	if err != nil {
		switch {
		case db.IsUniqueViolation(err):
			return errs.NewError(errs.ErrAlreadyMember)
		case db.IsForeignKeyViolation(err):
			return errs.NewError(errs.ErrCommunityNotFound)
		}
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE communities SET member_count = member_count + 1, updated_at = now()
		WHERE id = $1`,
		communityID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Leave removes the membership row and decrements member_count in one
// transaction. Leaving a room the user never joined is ErrNotAMember.
func (s *Store) Leave(ctx context.Context, communityID, userID int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		DELETE FROM community_members
		WHERE user_id = $1 AND community_id = $2`,
		userID, communityID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return errs.NewError(errs.ErrNotAMember)
	}

	_, err = tx.Exec(ctx, `
		UPDATE communities SET member_count = GREATEST(member_count - 1, 0), updated_at = now()
		WHERE id = $1`,
		communityID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// IsMember reports whether a membership row exists for (user, community).
func (s *Store) IsMember(ctx context.Context, userID, communityID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM community_members
			WHERE user_id = $1 AND community_id = $2
		)`,
		userID, communityID).Scan(&exists)
	return exists, err
}

// CountFor derives the member count from the rows themselves, available for
// reconciling the maintained counter.
func (s *Store) CountFor(ctx context.Context, communityID int64) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM community_members WHERE community_id = $1`,
		communityID).Scan(&count)
	return count, err
}
