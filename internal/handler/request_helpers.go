package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/gameinventory/internal/auth"
	"github.com/osse101/gameinventory/internal/domain"
	"github.com/osse101/gameinventory/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and
// writes a standardized error response on failure. If it returns an error
// the HTTP response has already been written and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// CallerFromContext extracts the authenticated identity placed in the
// context by the auth middleware. If it returns false the response has
// been written.
func CallerFromContext(w http.ResponseWriter, r *http.Request) (domain.UserInfo, bool) {
	info, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return domain.UserInfo{}, false
	}
	return info, true
}

// IDURLParam parses a positive integer URL parameter. If it returns false
// the response has been written.
func IDURLParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Invalid %s parameter", name))
		return 0, false
	}
	return id, true
}
