package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayusman/signspeak/internal/detector"
	"github.com/ayusman/signspeak/internal/session"
	"github.com/ayusman/signspeak/internal/sign"
)

func TestHandleHealth(t *testing.T) {
	srv := New(Config{
		Session:    session.New(session.DefaultConfig()),
		Classifier: sign.NewClassifier(nil),
		Detector:   detector.NewMockDetector(),
	})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Status   string `json:"status"`
		Uptime   string `json:"uptime"`
		Detector bool   `json:"detector"`
		Speech   bool   `json:"speech"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want %q", resp.Status, "ok")
	}
	if resp.Uptime == "" {
		t.Error("uptime missing")
	}
	if !resp.Detector {
		t.Error("detector = false with a detector configured")
	}
	if resp.Speech {
		t.Error("speech = true with no dispatcher")
	}
}

func TestHandleHealthMethodNotAllowed(t *testing.T) {
	srv := New(Config{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty", "", 40, nil},
		{"single line", "Hello Water", 40, []string{"Hello Water"}},
		{"wraps on word boundary", "Hello Water Good More Less", 12, []string{"Hello Water", "Good More", "Less"}},
		{"long word on its own line", "Hello Congratulations", 10, []string{"Hello", "Congratulations"}},
		// 11 runes but 13 bytes; counting bytes would wrap early.
		{"counts runes not bytes", "héllo wörld", 12, []string{"héllo wörld"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("wrapText() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRoutesRequireCollaborators(t *testing.T) {
	// With no session, camera or detector, only the health route exists.
	srv := New(Config{})

	for _, path := range []string{"/api/sentence", "/api/status", "/api/config", "/api/detect", "/api/stream"} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404 without collaborators", path, rec.Code)
		}
	}
}

func TestSessionRoutesWired(t *testing.T) {
	srv := New(Config{Session: session.New(session.DefaultConfig())})

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/status"},
		{http.MethodGet, "/api/sentence"},
		{http.MethodGet, "/api/config"},
		{http.MethodGet, "/api/history"},
		{http.MethodPost, "/api/speech/toggle"},
	}
	for _, p := range paths {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(p.method, p.path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s %s = %d, want 200", p.method, p.path, rec.Code)
		}
	}
}
