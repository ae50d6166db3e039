package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// decodeBody decodes a single JSON value from the request body into dst.
// Anything after that value other than whitespace is rejected.
//
// On failure it writes the error response itself and returns false.
func (h *BaseHandler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err == nil {
		if extra := dec.Decode(&json.RawMessage{}); extra != io.EOF {
			err = extra
			if err == nil {
				err = errors.New("unexpected data after JSON value")
			}
		}
	}
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		h.respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}

	h.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
	return false
}
