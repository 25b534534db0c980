package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goto/salt/log"
	"github.com/gorilla/mux"
	"github.com/sextant-data/sextant/core/bookmark"
	"github.com/sextant-data/sextant/core/user"
	"github.com/sextant-data/sextant/internal/server/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepository struct {
	users map[string]user.User
}

func (s *stubUserRepository) GetAll(ctx context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *stubUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.NotFoundError{UserID: id}
	}
	return u, nil
}

type stubBookmarkRepository struct {
	byUser map[string][]string
}

func (s *stubBookmarkRepository) GetAssetIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	return s.byUser[userID], nil
}

func newUserRouter() *mux.Router {
	users := &stubUserRepository{users: map[string]user.User{
		"user-1": {ID: "user-1", Username: "jdoe"},
	}}
	bookmarks := bookmark.NewService(&stubBookmarkRepository{byUser: map[string][]string{
		"user-1": {"asset-1", "asset-2"},
	}})

	h := handlers.NewUserHandler(log.NewNoop(), users, bookmarks)

	r := mux.NewRouter()
	r.Path("/users").Methods(http.MethodGet).HandlerFunc(h.GetAll)
	r.Path("/users/{id}/bookmarks").Methods(http.MethodGet).HandlerFunc(h.GetBookmarks)
	return r
}

func TestUserHandler_GetAll(t *testing.T) {
	router := newUserRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data []user.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "jdoe", body.Data[0].Username)
}

func TestUserHandler_GetBookmarks(t *testing.T) {
	router := newUserRouter()

	t.Run("should return the user's bookmarked asset ids", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/user-1/bookmarks", nil))
		assert.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			Data []string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, []string{"asset-1", "asset-2"}, body.Data)
	})

	t.Run("should answer 404 for an unknown user", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/nobody/bookmarks", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
