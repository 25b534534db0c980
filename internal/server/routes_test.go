package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goto/salt/log"
	"github.com/gorilla/mux"
	"github.com/sextant-data/sextant/core/asset"
	"github.com/sextant-data/sextant/core/bookmark"
	"github.com/sextant-data/sextant/core/user"
	serverhandlers "github.com/sextant-data/sextant/internal/server/handlers"
	"github.com/stretchr/testify/assert"
)

type noopAssetRepository struct{}

func (noopAssetRepository) GetAll(ctx context.Context, flt asset.Filter) ([]asset.DataAsset, error) {
	return nil, nil
}

func (noopAssetRepository) GetByID(ctx context.Context, id string) (asset.DataAsset, error) {
	return asset.DataAsset{}, asset.NotFoundError{AssetID: id}
}

func (noopAssetRepository) GetLineage(ctx context.Context, id string) ([]asset.LineageEdge, error) {
	return nil, nil
}

func (noopAssetRepository) GetSample(ctx context.Context, id string, limit int) ([]asset.SampleRow, error) {
	return nil, nil
}

type noopUserRepository struct{}

func (noopUserRepository) GetAll(ctx context.Context) ([]user.User, error) { return nil, nil }

func (noopUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{}, user.NotFoundError{UserID: id}
}

type noopBookmarkRepository struct{}

func (noopBookmarkRepository) GetAssetIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}

func newTestHandler() http.Handler {
	logger := log.NewNoop()

	router := mux.NewRouter()
	RegisterRoutes(router, &serverhandlers.Handler{
		Asset: serverhandlers.NewAssetHandler(logger, asset.NewService(asset.ServiceDeps{
			FlatFileRepo: noopAssetRepository{},
		})),
		User: serverhandlers.NewUserHandler(logger, noopUserRepository{}, bookmark.NewService(noopBookmarkRepository{})),
	})
	return requestID(router)
}

func TestRoutes(t *testing.T) {
	handler := newTestHandler()

	do := func(method, target string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
		return rr
	}

	t.Run("ping answers pong", func(t *testing.T) {
		rr := do(http.MethodGet, "/ping")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "pong", rr.Body.String())
	})

	t.Run("asset routes are mounted under v1beta1", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/v1beta1/assets").Code)
		assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/v1beta1/assets/unknown").Code)
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/v1beta1/users").Code)
	})

	t.Run("unknown routes answer a JSON 404", func(t *testing.T) {
		rr := do(http.MethodGet, "/v1beta1/nope")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "no matching route")
	})

	t.Run("mutations are rejected on read-only routes", func(t *testing.T) {
		assert.Equal(t, http.StatusMethodNotAllowed, do(http.MethodPost, "/v1beta1/assets").Code)
	})

	t.Run("requests are tagged with an id", func(t *testing.T) {
		rr := do(http.MethodGet, "/ping")
		assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
	})

	t.Run("a caller-supplied request id is preserved", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-Id", "req-123")
		handler.ServeHTTP(rr, req)
		assert.Equal(t, "req-123", rr.Header().Get("X-Request-Id"))
	})
}
