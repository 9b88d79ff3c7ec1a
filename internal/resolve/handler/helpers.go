package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"certmatch-service/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// batchFrom достаёт партию по {id} из URL; nil — ответ уже записан.
func batchFrom(w http.ResponseWriter, r *http.Request, st *store.Store) *store.Batch {
	id := chi.URLParam(r, "id")
	b, ok := st.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "batch not found")
		return nil
	}
	return b
}

// recipientIndex парсит {index} из URL; -1 — ответ уже записан.
func recipientIndex(w http.ResponseWriter, r *http.Request) int {
	raw := chi.URLParam(r, "index")
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 {
		writeError(w, http.StatusBadRequest, "bad recipient index")
		return -1
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
