package user

import (
	"context"
	"errors"
	"fmt"
)

var ErrNoUserInformation = errors.New("no user information")

// User is a catalog user loaded from the meta store's users table.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type NotFoundError struct {
	UserID string
}

func (err NotFoundError) Error() string {
	return fmt.Sprintf("no such user: %q", err.UserID)
}

type Repository interface {
	GetAll(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (User, error)
}
