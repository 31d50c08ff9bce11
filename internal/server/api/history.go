package api

import (
	"net/http"
	"strconv"

	"github.com/ayusman/signspeak/internal/session"
	"github.com/ayusman/signspeak/internal/store"
)

// HistoryHandler serves GET /api/history: cleared sentences from the
// current session plus the persistent archive when a store is
// configured. ?limit=N restricts the archive to the most recent N.
type HistoryHandler struct {
	session *session.Session
	store   *store.Store
}

// NewHistoryHandler creates a HistoryHandler. store may be nil.
func NewHistoryHandler(s *session.Session, st *store.Store) *HistoryHandler {
	return &HistoryHandler{session: s, store: st}
}

type archiveEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type historyResponse struct {
	Session []string       `json:"session"`
	Archive []archiveEntry `json:"archive,omitempty"`
}

// ServeHTTP implements the http.Handler interface.
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	resp := historyResponse{Session: h.session.History()}

	if h.store != nil {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = n
		}

		entries, err := h.store.History().List(limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load history")
			return
		}
		for _, e := range entries {
			resp.Archive = append(resp.Archive, archiveEntry{
				ID:        e.ID,
				Text:      e.Text,
				CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
