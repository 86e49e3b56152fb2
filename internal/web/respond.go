package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/r2db/catalog/internal/catalog"
	"github.com/r2db/catalog/internal/persist"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps the error taxonomy onto HTTP statuses. Data-access
// details were already logged at the persistence layer and never reach
// the client.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var verr *catalog.ValidationError
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error()})
	case persist.IsDataAccess(err):
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	default:
		log.Error("unhandled error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
