package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "frota/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("error encoding response: %v", err)
	}
}

// writeError maps taxonomy errors to their HTTP status; anything else is an
// opaque 500.
func writeError(w http.ResponseWriter, err error) {
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		writeJSON(w, httpErr.Code, map[string]string{"message": httpErr.Message})
		return
	}
	log.Printf("internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
}
