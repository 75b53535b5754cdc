package menu

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

func writeError(w http.ResponseWriter, status int, message string) {
	slog.Error("handling error response",
		"status", status,
		"message", message,
	)
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	b, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, "error, see logs for details", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		slog.Error("failed to write JSON response", "error", err)
		return
	}
	slog.Debug("json response sent", "status", status, "bytes", len(b))
}

// pathParam reads the path to resolve from the query string.
func pathParam(r *http.Request) (string, error) {
	q := r.URL.Query()
	if !q.Has("path") {
		return "", fmt.Errorf("missing required query parameter: path")
	}
	return q.Get("path"), nil
}
