package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/goto/salt/log"
	"github.com/sextant-data/sextant/core/bookmark"
	"github.com/sextant-data/sextant/core/user"
)

type UserHandler struct {
	logger          log.Logger
	userRepository  user.Repository
	bookmarkService *bookmark.Service
}

func NewUserHandler(logger log.Logger, userRepository user.Repository, bookmarkService *bookmark.Service) *UserHandler {
	return &UserHandler{
		logger:          logger,
		userRepository:  userRepository,
		bookmarkService: bookmarkService,
	}
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepository.GetAll(r.Context())
	if err != nil {
		internalServerError(w, h.logger, err.Error())
		return
	}
	if users == nil {
		users = []user.User{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": users,
	})
}

func (h *UserHandler) GetBookmarks(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	if _, err := h.userRepository.GetByID(r.Context(), userID); err != nil {
		var notFoundErr user.NotFoundError
		if errors.As(err, &notFoundErr) {
			WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		internalServerError(w, h.logger, err.Error())
		return
	}

	assetIDs, err := h.bookmarkService.GetBookmarkedAssetIDs(r.Context(), userID)
	if err != nil {
		internalServerError(w, h.logger, err.Error())
		return
	}
	if assetIDs == nil {
		assetIDs = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": assetIDs,
	})
}
