package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/dmitrijs2005/folio/internal/models"
	"github.com/dmitrijs2005/folio/internal/server/auth"
)

const maxBodyBytes = 1 << 20

const msgInternal = "Internal server error"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData[T any](w http.ResponseWriter, status int, data T) {
	writeJSON(w, status, models.Envelope[T]{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, models.MessageEnvelope{Success: true, Message: msg})
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorEnvelope{Error: msg})
}

// errorStatus maps service errors to HTTP statuses.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorConflict):
		return http.StatusConflict
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError sends err to the client. Internal errors are logged and
// replaced with a generic message.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeErrorMessage(w, status, msgInternal)
		return
	}
	writeErrorMessage(w, status, err.Error())
}

// decodeJSON reads the request body into dst. An empty body leaves dst as is.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return common.Invalid("Invalid JSON body")
}

// discardLogger keeps handlers usable when no logger is configured.
func discardLogger(l logging.Logger) logging.Logger {
	if l == nil {
		return logging.Discard()
	}
	return l
}
