// handlers/respond.go
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func respondWithJSON(logger *zap.Logger, w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("marshalling JSON response", zap.Error(err))
		http.Error(w, `{"error":"failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(logger *zap.Logger, w http.ResponseWriter, code int, message string) {
	logger.Warn("api error", zap.Int("status", code), zap.String("message", message))
	respondWithJSON(logger, w, code, map[string]string{"error": message})
}
