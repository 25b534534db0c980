package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/goto/salt/log"
	"github.com/sextant-data/sextant/core/asset"
)

// Handler bundles every route handler the server mounts.
type Handler struct {
	Asset *AssetHandler
	User  *UserHandler
}

// AssetHandler exposes the canonical asset surface over REST.
type AssetHandler struct {
	logger  log.Logger
	service *asset.Service
}

func NewAssetHandler(logger log.Logger, service *asset.Service) *AssetHandler {
	return &AssetHandler{
		logger:  logger,
		service: service,
	}
}

func (h *AssetHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	flt, err := asset.BuildFilter(r.URL.Query().Get("source"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	assets, err := h.service.GetAllAssets(r.Context(), flt)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": assets,
	})
}

func (h *AssetHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	assetID := mux.Vars(r)["id"]

	ast, err := h.service.GetAssetByID(r.Context(), assetID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ast)
}

func (h *AssetHandler) GetLineage(w http.ResponseWriter, r *http.Request) {
	assetID := mux.Vars(r)["id"]

	edges, err := h.service.GetLineage(r.Context(), assetID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if edges == nil {
		edges = []asset.LineageEdge{}
	}

	writeJSON(w, http.StatusOK, edges)
}

func (h *AssetHandler) GetSample(w http.ResponseWriter, r *http.Request) {
	assetID := mux.Vars(r)["id"]

	limit := 0
	if size := r.URL.Query().Get("size"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n < 0 {
			WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid size: %q", size))
			return
		}
		limit = n
	}

	rows, err := h.service.GetSample(r.Context(), assetID, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if rows == nil {
		rows = []asset.SampleRow{}
	}

	writeJSON(w, http.StatusOK, rows)
}

func (h *AssetHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	check, err := h.service.TestConnection(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, check)
}

func (h *AssetHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.service.ClearCache()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cache cleared"})
}

// writeError maps the error taxonomy onto status codes. Upstream
// failures keep their human-readable message plus a structured detail.
func (h *AssetHandler) writeError(w http.ResponseWriter, err error) {
	var (
		notFoundErr    asset.NotFoundError
		invalidErr     asset.InvalidError
		unsupportedErr asset.UnsupportedAuthError
		connectErr     asset.ConnectError
		queryErr       asset.QueryError
		streamErr      asset.StreamError
	)

	switch {
	case errors.As(err, &notFoundErr):
		WriteJSONError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &invalidErr), errors.Is(err, asset.ErrEmptyID):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &unsupportedErr):
		writeJSONErrorDetails(w, http.StatusNotImplemented,
			"interactive browser sign-in is not supported for server connections", err.Error())
	case errors.As(err, &connectErr):
		writeJSONErrorDetails(w, http.StatusBadGateway, "warehouse unreachable", err.Error())
	case errors.As(err, &queryErr):
		writeJSONErrorDetails(w, http.StatusBadGateway, "warehouse query failed", err.Error())
	case errors.As(err, &streamErr):
		writeJSONErrorDetails(w, http.StatusBadGateway, "warehouse result stream interrupted", err.Error())
	case errors.Is(err, asset.ErrNoWarehouse):
		WriteJSONError(w, http.StatusNotImplemented, err.Error())
	default:
		internalServerError(w, h.logger, err.Error())
	}
}
