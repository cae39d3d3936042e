package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"token-swap-gateway/pkg/types"
)

// ErrorResponse is the uniform error body for every gateway endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// respondFailure maps the error taxonomy onto HTTP statuses. Upstream
// payloads pass through verbatim when present so callers see what the
// aggregator actually said.
func respondFailure(w http.ResponseWriter, err error) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		respondError(w, http.StatusBadRequest, verr.Error())
		return
	}

	var qerr *types.QuoteError
	if errors.As(err, &qerr) && qerr.Kind == types.QuoteInvalidInput {
		respondError(w, http.StatusBadRequest, qerr.Error())
		return
	}

	var uerr *types.UpstreamError
	if errors.As(err, &uerr) && uerr.Body != "" {
		respondError(w, http.StatusInternalServerError, uerr.Body)
		return
	}

	respondError(w, http.StatusInternalServerError, err.Error())
}
