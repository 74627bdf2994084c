package auth

import (
	"context"
	"errors"
	"time"

	"github.com/stocksmart/backend/internal/model"
)

// ErrNotFound is returned by UserStore lookups when no matching user exists.
var ErrNotFound = errors.New("user not found")

// ErrDuplicate is returned by Insert when the username is already taken.
var ErrDuplicate = errors.New("user already exists")

// UserStore is the persistence collaborator of the auth core. All operations
// are atomic at single-user granularity; SetRefreshToken replaces the user's
// one live token slot.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Insert(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	SetRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, userID int64) (*model.RefreshToken, error)
	ClearRefreshToken(ctx context.Context, userID int64) error
}
