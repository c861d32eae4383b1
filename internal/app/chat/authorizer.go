package chat

import (
	"context"

	"footchat/internal/app/user"
	"footchat/internal/pkg/auth/jwt"
	"footchat/internal/pkg/errs"
)

// UserDirectory is the read-only user lookup the authorizer depends on.
// Implemented by user.Store.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// MembershipChecker answers whether a membership row exists for a
// (user, community) pair. Implemented by community.Store; the REST API uses
// the same check, so there is one source of truth for room access.
type MembershipChecker interface {
	IsMember(ctx context.Context, userID, communityID int64) (bool, error)
}

// Authorizer is the membership authority for room events. It holds no
// mutable state and is safe for concurrent use by every connection.
type Authorizer struct {
	users     UserDirectory
	members   MembershipChecker
	jwtSecret string
}

// NewAuthorizer creates an authorizer.
func NewAuthorizer(users UserDirectory, members MembershipChecker, jwtSecret string) *Authorizer {
	return &Authorizer{
		users:     users,
		members:   members,
		jwtSecret: jwtSecret,
	}
}

// Authorize runs the full check chain for one event: token signature and
// expiry, user existence, ban flag, active flag, membership row. Each step
// fails with its own code. Ban or membership revocation therefore takes
// effect on the next event, not on open subscriptions.
func (a *Authorizer) Authorize(ctx context.Context, token string, roomID int64) (*user.User, *errs.CustomError) {
	claims, err := jwt.ParseAccessToken(token, a.jwtSecret)
	if err != nil {
		return nil, errs.NewError(errs.ErrInvalidToken)
	}

	u, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, errs.AsCustom(err)
	}

	if u.Banned {
		return nil, errs.NewError(errs.ErrUserBanned)
	}

	if !u.Active {
		return nil, errs.NewError(errs.ErrUserInactive)
	}

	isMember, err := a.members.IsMember(ctx, u.ID, roomID)
	if err != nil {
		return nil, errs.AsCustom(err)
	}

	if !isMember {
		return nil, errs.NewError(errs.ErrNotAMember)
	}

	return u, nil
}
