package flatfile

import (
	"context"
	"errors"

	"github.com/sextant-data/sextant/core/user"
)

// UserRepository reads catalog users out of the users table.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) (*UserRepository, error) {
	if store == nil {
		return nil, errors.New("flat-file store is nil")
	}
	return &UserRepository{store: store}, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]user.User, error) {
	ts, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ts.Users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	ts, err := r.store.Load(ctx)
	if err != nil {
		return user.User{}, err
	}

	u, ok := ts.indexes().userByID[id]
	if !ok {
		return user.User{}, user.NotFoundError{UserID: id}
	}
	return u, nil
}
