package bookmark

import (
	"context"
)

// Bookmark marks an asset a user pinned in the catalog UI.
type Bookmark struct {
	UserID       string `json:"user_id"`
	AssetID      string `json:"data_asset_id"`
	BookmarkedAt string `json:"bookmarked_at,omitempty"`
}

type Repository interface {
	// GetAssetIDsByUserID lists the ids of every asset the user has
	// bookmarked, in the order the bookmarks were stored.
	GetAssetIDsByUserID(ctx context.Context, userID string) ([]string, error)
}

// Service wraps the repository; bookmark persistence itself is client-side,
// the server only surfaces the seeded flat-file rows.
type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

func (s *Service) GetBookmarkedAssetIDs(ctx context.Context, userID string) ([]string, error) {
	return s.repository.GetAssetIDsByUserID(ctx, userID)
}
