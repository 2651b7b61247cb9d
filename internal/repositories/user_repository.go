package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"ferrybackend/internal/domain"
)

// UserRepository persists registered account holders.
type UserRepository struct {
	DB *sql.DB
}

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
}

func (r UserRepository) Create(ctx context.Context, u *User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, full_name, created_at) VALUES (?, ?, ?, ?)`,
		u.Email, u.PasswordHash, u.FullName, u.CreatedAt,
	)
	if err != nil {
		return domain.InternalError{Msg: "failed to create user", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.InternalError{Msg: "failed to read user id", Err: err}
	}
	u.ID = id
	return nil
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, full_name, created_at FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return u, domain.InternalError{Msg: "failed to load user", Err: err}
	}
	return u, nil
}
