package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sextant-data/sextant/internal/server/handlers"
)

func RegisterRoutes(router *mux.Router, h *handlers.Handler) {
	router.PathPrefix("/ping").Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	}))

	v1 := router.PathPrefix("/v1beta1").Subrouter()

	v1.Path("/assets").Methods(http.MethodGet).HandlerFunc(h.Asset.GetAll)
	v1.Path("/assets/{id}").Methods(http.MethodGet).HandlerFunc(h.Asset.GetByID)
	v1.Path("/assets/{id}/lineage").Methods(http.MethodGet).HandlerFunc(h.Asset.GetLineage)
	v1.Path("/assets/{id}/sample").Methods(http.MethodGet).HandlerFunc(h.Asset.GetSample)

	v1.Path("/users").Methods(http.MethodGet).HandlerFunc(h.User.GetAll)
	v1.Path("/users/{id}/bookmarks").Methods(http.MethodGet).HandlerFunc(h.User.GetBookmarks)

	v1.Path("/connection/test").Methods(http.MethodPost).HandlerFunc(h.Asset.TestConnection)
	v1.Path("/cache/clear").Methods(http.MethodPost).HandlerFunc(h.Asset.ClearCache)

	router.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)
}
