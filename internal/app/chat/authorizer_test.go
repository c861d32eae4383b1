package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"footchat/internal/app/user"
	"footchat/internal/pkg/auth/jwt"
	"footchat/internal/pkg/errs"
)

const testSecret = "authorizer-test-secret"

type mockUserDirectory struct {
	getByIDFunc func(ctx context.Context, id int64) (*user.User, error)
}

func (m *mockUserDirectory) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

type mockMembershipChecker struct {
	isMemberFunc func(ctx context.Context, userID, communityID int64) (bool, error)
}

func (m *mockMembershipChecker) IsMember(ctx context.Context, userID, communityID int64) (bool, error) {
	if m.isMemberFunc != nil {
		return m.isMemberFunc(ctx, userID, communityID)
	}
	return false, errors.New("not implemented")
}

func activeUser(id int64) *user.User {
	return &user.User{ID: id, Username: "alice", Active: true}
}

func accessToken(t *testing.T, userID int64, ttl time.Duration) string {
	t.Helper()

	token, err := jwt.GenerateToken(userID, jwt.KindAccess, testSecret, ttl)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return token
}

func TestAuthorize_Success(t *testing.T) {
	users := &mockUserDirectory{
		getByIDFunc: func(ctx context.Context, id int64) (*user.User, error) {
			return activeUser(id), nil
		},
	}
	members := &mockMembershipChecker{
		isMemberFunc: func(ctx context.Context, userID, communityID int64) (bool, error) {
			return true, nil
		},
	}

	a := NewAuthorizer(users, members, testSecret)

	u, customErr := a.Authorize(context.Background(), accessToken(t, 7, time.Hour), 3)
	if customErr != nil {
		t.Fatalf("Authorize() error = %v", customErr)
	}
	if u.ID != 7 {
		t.Errorf("Authorize() user id = %d, want 7", u.ID)
	}
}

func TestAuthorize_FailureModes(t *testing.T) {
	tests := []struct {
		name     string
		token    func(t *testing.T) string
		users    *mockUserDirectory
		members  *mockMembershipChecker
		wantCode int
	}{
		{
			name:     "malformed token",
			token:    func(t *testing.T) string { return "not-a-token" },
			wantCode: errs.ErrInvalidToken,
		},
		{
			name:     "expired token",
			token:    func(t *testing.T) string { return accessToken(t, 7, -time.Minute) },
			wantCode: errs.ErrInvalidToken,
		},
		{
			name:  "user not found",
			token: func(t *testing.T) string { return accessToken(t, 7, time.Hour) },
			users: &mockUserDirectory{
				getByIDFunc: func(ctx context.Context, id int64) (*user.User, error) {
					return nil, errs.NewError(errs.ErrUserNotFound)
				},
			},
			wantCode: errs.ErrUserNotFound,
		},
		{
			name:  "banned user",
			token: func(t *testing.T) string { return accessToken(t, 7, time.Hour) },
			users: &mockUserDirectory{
				getByIDFunc: func(ctx context.Context, id int64) (*user.User, error) {
					return &user.User{ID: id, Username: "alice", Active: true, Banned: true}, nil
				},
			},
			wantCode: errs.ErrUserBanned,
		},
		{
			name:  "inactive user",
			token: func(t *testing.T) string { return accessToken(t, 7, time.Hour) },
			users: &mockUserDirectory{
				getByIDFunc: func(ctx context.Context, id int64) (*user.User, error) {
					return &user.User{ID: id, Username: "alice", Active: false}, nil
				},
			},
			wantCode: errs.ErrUserInactive,
		},
		{
			name:  "not a member",
			token: func(t *testing.T) string { return accessToken(t, 7, time.Hour) },
			users: &mockUserDirectory{
				getByIDFunc: func(ctx context.Context, id int64) (*user.User, error) {
					return activeUser(id), nil
				},
			},
			members: &mockMembershipChecker{
				isMemberFunc: func(ctx context.Context, userID, communityID int64) (bool, error) {
					return false, nil
				},
			},
			wantCode: errs.ErrNotAMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := tt.users
			if users == nil {
				users = &mockUserDirectory{}
			}
			members := tt.members
			if members == nil {
				members = &mockMembershipChecker{}
			}

			a := NewAuthorizer(users, members, testSecret)

			u, customErr := a.Authorize(context.Background(), tt.token(t), 3)
			if customErr == nil {
				t.Fatal("Authorize() should fail")
			}
			if u != nil {
				t.Error("Authorize() should not return a user on failure")
			}
			if customErr.Code != tt.wantCode {
				t.Errorf("Authorize() code = %d, want %d", customErr.Code, tt.wantCode)
			}
		})
	}
}

func TestAuthorize_BanTakesEffectOnNextEvent(t *testing.T) {
	banned := false
	users := &mockUserDirectory{
		getByIDFunc: func(ctx context.Context, id int64) (*user.User, error) {
			return &user.User{ID: id, Username: "alice", Active: true, Banned: banned}, nil
		},
	}
	members := &mockMembershipChecker{
		isMemberFunc: func(ctx context.Context, userID, communityID int64) (bool, error) {
			return true, nil
		},
	}

	a := NewAuthorizer(users, members, testSecret)
	token := accessToken(t, 7, time.Hour)

	if _, customErr := a.Authorize(context.Background(), token, 3); customErr != nil {
		t.Fatalf("Authorize() before ban error = %v", customErr)
	}

	banned = true

	_, customErr := a.Authorize(context.Background(), token, 3)
	if customErr == nil || customErr.Code != errs.ErrUserBanned {
		t.Errorf("Authorize() after ban = %v, want code %d", customErr, errs.ErrUserBanned)
	}
}
