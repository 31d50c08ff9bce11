// Package server provides the HTTP surface of the SignSpeak service.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/signspeak/internal/capture"
	"github.com/ayusman/signspeak/internal/detector"
	"github.com/ayusman/signspeak/internal/server/api"
	"github.com/ayusman/signspeak/internal/session"
	"github.com/ayusman/signspeak/internal/sign"
	"github.com/ayusman/signspeak/internal/speech"
	"github.com/ayusman/signspeak/internal/store"
)

// Config holds the server configuration. Nil collaborators disable the
// routes that depend on them.
type Config struct {
	StaticDir  string
	Session    *session.Session
	Classifier *sign.Classifier
	Detector   detector.Detector
	Camera     capture.Camera
	Speech     *speech.Dispatcher
	Store      *store.Store
}

// Server represents the HTTP server for the SignSpeak service.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Session != nil {
		sentenceHandler := api.NewSentenceHandler(s.config.Session, s.config.Speech)
		s.mux.Handle("/api/sentence", sentenceHandler)
		s.mux.Handle("/api/sentence/backspace", sentenceHandler)
		s.mux.Handle("/api/status", sentenceHandler)

		configHandler := api.NewConfigHandler(s.config.Session, s.config.Store)
		s.mux.Handle("/api/config", configHandler)

		speechHandler := api.NewSpeechHandler(s.config.Session, s.config.Speech, s.config.Store)
		s.mux.Handle("/api/speech/toggle", speechHandler)

		historyHandler := api.NewHistoryHandler(s.config.Session, s.config.Store)
		s.mux.Handle("/api/history", historyHandler)
	}

	// Single-image detection shares the session with the video loop.
	if s.config.Session != nil && s.config.Detector != nil && s.config.Classifier != nil {
		detectHandler := api.NewDetectHandler(s.config.Detector, s.config.Classifier, s.config.Session)
		s.mux.Handle("/api/detect", detectHandler)
	}

	// MJPEG stream with the detection overlay.
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera, s.config.Session, s.config.Speech)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Live landmark feed over WebSocket.
	if s.config.Camera != nil && s.config.Detector != nil {
		landmarksHandler := NewLandmarksHandler(s.config.Detector, s.config.Camera)
		s.mux.Handle("/api/landmarks", landmarksHandler)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status":   "ok",
		"uptime":   uptime.String(),
		"detector": s.config.Detector != nil,
		"speech":   s.config.Speech.Enabled(),
	}
	if s.config.Camera != nil {
		response["camera"] = s.config.Camera.IsOpen()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
