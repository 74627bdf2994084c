package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stocksmart/backend/internal/auth"
	"github.com/stocksmart/backend/internal/model"
)

// Postgres implements auth.UserStore. The refresh token lives in two columns
// on the user row, so replacing or clearing it is a single atomic UPDATE.

func (db *Postgres) EnsureUserSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL,
			password_hash BYTEA NOT NULL,
			password_salt BYTEA NOT NULL,
			role TEXT NOT NULL DEFAULT 'User',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_login_at TIMESTAMPTZ,
			refresh_token TEXT,
			refresh_token_expires_at TIMESTAMPTZ
		)
		`,
		`CREATE INDEX IF NOT EXISTS users_username_idx ON users(username)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func (db *Postgres) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, password_salt, role, is_active,
		       created_at, last_login_at, refresh_token, refresh_token_expires_at
		FROM users
		WHERE username = $1
	`
	return db.scanUser(db.Pool.QueryRow(ctx, query, username))
}

func (db *Postgres) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, password_salt, role, is_active,
		       created_at, last_login_at, refresh_token, refresh_token_expires_at
		FROM users
		WHERE id = $1
	`
	return db.scanUser(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	return exists, err
}

func (db *Postgres) Insert(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, password_salt, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := db.Pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.PasswordSalt,
		user.Role,
		user.IsActive,
		user.CreatedAt,
	).Scan(&user.ID)
	if isUniqueViolation(err) {
		return auth.ErrDuplicate
	}
	return err
}

func (db *Postgres) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, password_salt = $4, role = $5,
		    is_active = $6, last_login_at = $7
		WHERE id = $1
	`
	tag, err := db.Pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.PasswordSalt,
		user.Role,
		user.IsActive,
		user.LastLoginAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (db *Postgres) SetRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $2, refresh_token_expires_at = $3
		WHERE id = $1
	`
	tag, err := db.Pool.Exec(ctx, query, userID, token, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (db *Postgres) GetRefreshToken(ctx context.Context, userID int64) (*model.RefreshToken, error) {
	query := `
		SELECT refresh_token, refresh_token_expires_at
		FROM users
		WHERE id = $1
	`
	var token *string
	var expiresAt *time.Time
	if err := db.Pool.QueryRow(ctx, query, userID).Scan(&token, &expiresAt); err != nil {
		if IsNoRows(err) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	if token == nil || *token == "" || expiresAt == nil {
		return nil, nil
	}

	return &model.RefreshToken{Token: *token, ExpiresAt: *expiresAt}, nil
}

func (db *Postgres) ClearRefreshToken(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET refresh_token = NULL, refresh_token_expires_at = NULL
		WHERE id = $1
	`
	_, err := db.Pool.Exec(ctx, query, userID)
	return err
}

func (db *Postgres) scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	var user model.User
	var refreshToken *string
	var refreshExpiry *time.Time
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.PasswordSalt,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.LastLoginAt,
		&refreshToken,
		&refreshExpiry,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}

	if refreshToken != nil {
		user.RefreshToken = *refreshToken
	}
	user.RefreshTokenExpiresAt = refreshExpiry
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
