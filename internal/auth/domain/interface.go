package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/Ylandolsi/ExpenseTrackerApi/internal/auth/domain UserRepository,RefreshTokenRepository

type UserRepository interface {
	// GetByEmailOrPhone matches either identifier case-insensitively.
	// Returns (nil, nil) when no user matches.
	GetByEmailOrPhone(ctx context.Context, email, phone string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, user *User) error
}

type RefreshTokenRepository interface {
	Store(ctx context.Context, rt *RefreshToken) error
	// Resolve returns the token record only if it exists and has not
	// expired. Expired rows are treated as absent.
	Resolve(ctx context.Context, token string) (*RefreshToken, error)
	// Revoke deletes the record regardless of expiry and reports whether
	// one existed.
	Revoke(ctx context.Context, token string) (bool, error)
	CountActiveByUserID(ctx context.Context, userID int64) (int, error)
	DeleteOldestByUserID(ctx context.Context, userID int64, keep int) error
}
