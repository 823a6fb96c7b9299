package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

const contentTypeJSON = "application/json"

func writeJSON(w http.ResponseWriter, logger *zap.SugaredLogger, code int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("Unable to encode response: %s", err)
	}
}
