package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/goto/salt/log"
)

type ErrorResponse struct {
	Reason  string `json:"reason"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, &ErrorResponse{Reason: msg})
}

func writeJSONErrorDetails(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, &ErrorResponse{Reason: msg, Details: details})
}

func internalServerError(w http.ResponseWriter, logger log.Logger, msg string) {
	ref := time.Now().Unix()
	logger.Error(msg, "ref", ref)
	WriteJSONError(w, http.StatusInternalServerError,
		fmt.Sprintf("%s - ref (%d)", http.StatusText(http.StatusInternalServerError), ref))
}
