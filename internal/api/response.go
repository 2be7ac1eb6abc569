package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/site-builder-service/internal/lock"
	"github.com/teresa-solution/site-builder-service/internal/model"
	"github.com/teresa-solution/site-builder-service/internal/service"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string, err error) {
	response := map[string]interface{}{
		"error":   message,
		"success": false,
	}

	if statusCode >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", statusCode).Msg(message)
	} else {
		if err != nil {
			response["details"] = err.Error()
		}
		log.Warn().Err(err).Int("status", statusCode).Msg(message)
	}

	writeJSON(w, statusCode, response)
}

// writeServiceError maps a service failure to a response. fallback is the
// message used for store and unexpected failures.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, model.ErrTemplateNotFound):
		writeError(w, http.StatusNotFound, "Component template not found", err)
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "Tenant not found", nil)
	case errors.Is(err, service.ErrInvalid):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, service.ErrSlugTaken):
		writeError(w, http.StatusConflict, "Slug already in use", err)
	case errors.Is(err, service.ErrTenantExists):
		writeError(w, http.StatusConflict, "Tenant already exists", err)
	case errors.Is(err, lock.ErrNotAcquired):
		writeError(w, http.StatusServiceUnavailable, "Tenant is busy, retry later", err)
	default:
		writeError(w, http.StatusInternalServerError, fallback, err)
	}
}

// decodeBody decodes the JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("empty body")
		}
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}
