package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/balkashynov/punch/internal/db"
	"github.com/balkashynov/punch/internal/security"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[http] encode response: %v", err)
	}
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeError maps store and auth errors to a status code. Anything it does
// not recognise is logged and reported as a 500 with an opaque message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, db.ErrValidation):
		errorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, db.ErrInvalidCredentials):
		errorJSON(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, security.ErrInvalidToken):
		errorJSON(w, http.StatusForbidden, err.Error())
	case errors.Is(err, db.ErrAlreadyOpen), errors.Is(err, db.ErrNotOpen):
		errorJSON(w, http.StatusConflict, err.Error())
	case errors.Is(err, db.ErrInvalidJob):
		errorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, db.ErrJobNotFound), errors.Is(err, db.ErrUserNotFound):
		errorJSON(w, http.StatusNotFound, err.Error())
	case errors.Is(err, db.ErrJobInUse), errors.Is(err, db.ErrUserExists):
		errorJSON(w, http.StatusConflict, err.Error())
	default:
		log.Printf("[http] %s %s: %v", r.Method, r.URL.Path, err)
		errorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}
