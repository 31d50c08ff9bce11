package api

import (
	"net/http"

	"github.com/ayusman/signspeak/internal/session"
	"github.com/ayusman/signspeak/internal/speech"
)

// SentenceHandler serves the current sentence and its edit operations:
//
//	GET    /api/status             - sentence, candidate, speech state
//	GET    /api/sentence           - sentence text and tokens
//	DELETE /api/sentence           - clear (archives to history)
//	POST   /api/sentence/backspace - remove the last token
type SentenceHandler struct {
	session *session.Session
	speech  *speech.Dispatcher
}

// NewSentenceHandler creates a SentenceHandler for the given session.
func NewSentenceHandler(s *session.Session, sp *speech.Dispatcher) *SentenceHandler {
	return &SentenceHandler{session: s, speech: sp}
}

type sentenceResponse struct {
	Sentence string   `json:"sentence"`
	Words    []string `json:"words"`
}

type statusResponse struct {
	Sentence            string  `json:"sentence"`
	CurrentSign         string  `json:"current_sign,omitempty"`
	Confidence          float64 `json:"confidence"`
	SpeechEnabled       bool    `json:"speech_enabled"`
	Speaking            bool    `json:"speaking"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
}

type clearResponse struct {
	Success  bool   `json:"success"`
	Archived string `json:"archived,omitempty"`
}

// ServeHTTP implements the http.Handler interface.
func (h *SentenceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/status":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.status(w)

	case "/api/sentence":
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, sentenceResponse{
				Sentence: h.session.Text(),
				Words:    h.session.Words(),
			})
		case http.MethodDelete:
			archived := h.session.Clear()
			writeJSON(w, http.StatusOK, clearResponse{Success: true, Archived: archived})
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}

	case "/api/sentence/backspace":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.session.RemoveLast()
		writeJSON(w, http.StatusOK, sentenceResponse{
			Sentence: h.session.Text(),
			Words:    h.session.Words(),
		})

	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (h *SentenceHandler) status(w http.ResponseWriter) {
	name, conf, _ := h.session.Candidate()
	writeJSON(w, http.StatusOK, statusResponse{
		Sentence:            h.session.Text(),
		CurrentSign:         name,
		Confidence:          conf,
		SpeechEnabled:       h.session.SpeechEnabled(),
		Speaking:            h.speech.Speaking(),
		ConfidenceThreshold: h.session.Config().ConfidenceThreshold,
	})
}
