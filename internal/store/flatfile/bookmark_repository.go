package flatfile

import (
	"context"
	"errors"
)

// BookmarkRepository reads the seeded bookmark rows. Live bookmark state
// is client-local; this only serves the flat-file fixture data.
type BookmarkRepository struct {
	store *Store
}

func NewBookmarkRepository(store *Store) (*BookmarkRepository, error) {
	if store == nil {
		return nil, errors.New("flat-file store is nil")
	}
	return &BookmarkRepository{store: store}, nil
}

func (r *BookmarkRepository) GetAssetIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	ts, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ts.indexes().assetIDsByUser[userID], nil
}
