package api

import (
	"log"
	"net/http"

	"github.com/ayusman/signspeak/internal/session"
	"github.com/ayusman/signspeak/internal/speech"
	"github.com/ayusman/signspeak/internal/store"
)

// SpeechHandler serves POST /api/speech/toggle. Disabling speech also
// drops any pending utterances and interrupts the one in flight.
type SpeechHandler struct {
	session *session.Session
	speech  *speech.Dispatcher
	store   *store.Store
}

// NewSpeechHandler creates a SpeechHandler. speech and store may be nil.
func NewSpeechHandler(s *session.Session, sp *speech.Dispatcher, st *store.Store) *SpeechHandler {
	return &SpeechHandler{session: s, speech: sp, store: st}
}

type speechToggleResponse struct {
	Success       bool `json:"success"`
	SpeechEnabled bool `json:"speech_enabled"`
}

// ServeHTTP implements the http.Handler interface.
func (h *SpeechHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	enabled := !h.session.SpeechEnabled()
	h.session.SetSpeechEnabled(enabled)
	if !enabled {
		h.speech.Stop()
	}

	if h.store != nil {
		if err := h.store.Settings().SetBool(store.SettingSpeechEnabled, enabled); err != nil {
			log.Printf("persist speech enabled: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, speechToggleResponse{Success: true, SpeechEnabled: enabled})
}
