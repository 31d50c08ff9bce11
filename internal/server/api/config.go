package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/ayusman/signspeak/internal/session"
	"github.com/ayusman/signspeak/internal/store"
)

// ConfigHandler serves GET/POST /api/config: the runtime-adjustable
// detection parameters. Updates take effect on the next frame and are
// persisted to the settings store when one is configured.
type ConfigHandler struct {
	session *session.Session
	store   *store.Store
}

// NewConfigHandler creates a ConfigHandler. store may be nil.
func NewConfigHandler(s *session.Session, st *store.Store) *ConfigHandler {
	return &ConfigHandler{session: s, store: st}
}

type configResponse struct {
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	HoldDurationSec     float64 `json:"hold_duration_sec"`
}

type updateConfigRequest struct {
	ConfidenceThreshold *float64 `json:"confidence_threshold"`
	HoldDurationSec     *float64 `json:"hold_duration_sec"`
}

// ServeHTTP implements the http.Handler interface.
func (h *ConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w)
	case http.MethodPost:
		h.update(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *ConfigHandler) get(w http.ResponseWriter) {
	cfg := h.session.Config()
	writeJSON(w, http.StatusOK, configResponse{
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		HoldDurationSec:     cfg.HoldDuration.Seconds(),
	})
}

func (h *ConfigHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	cfg := session.Config{}
	if req.ConfidenceThreshold != nil {
		if *req.ConfidenceThreshold <= 0 || *req.ConfidenceThreshold > 1 {
			writeError(w, http.StatusBadRequest, "confidence_threshold must be in (0, 1]")
			return
		}
		cfg.ConfidenceThreshold = *req.ConfidenceThreshold
	}
	if req.HoldDurationSec != nil {
		if *req.HoldDurationSec <= 0 || *req.HoldDurationSec > 30 {
			writeError(w, http.StatusBadRequest, "hold_duration_sec must be in (0, 30]")
			return
		}
		cfg.HoldDuration = time.Duration(*req.HoldDurationSec * float64(time.Second))
	}

	h.session.SetConfig(cfg)
	h.persist()

	h.get(w)
}

func (h *ConfigHandler) persist() {
	if h.store == nil {
		return
	}

	cfg := h.session.Config()
	settings := h.store.Settings()
	if err := settings.SetFloat(store.SettingConfidenceThreshold, cfg.ConfidenceThreshold); err != nil {
		log.Printf("persist confidence threshold: %v", err)
	}
	if err := settings.SetFloat(store.SettingHoldDurationSec, cfg.HoldDuration.Seconds()); err != nil {
		log.Printf("persist hold duration: %v", err)
	}
}
