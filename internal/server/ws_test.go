package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"gocv.io/x/gocv"

	"github.com/ayusman/signspeak/internal/detector"
)

// frameCamera hands out small synthetic frames so the stream loop has
// something to run detection on.
type frameCamera struct{}

func (frameCamera) Open() error  { return nil }
func (frameCamera) Close() error { return nil }
func (frameCamera) ReadFrame() (*gocv.Mat, error) {
	m := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC3)
	return &m, nil
}
func (frameCamera) SetFPS(fps int) {}
func (frameCamera) FPS() int       { return 15 }
func (frameCamera) IsOpen() bool   { return true }

// oneHandDetector reports a single right hand on every frame.
type oneHandDetector struct{}

func (oneHandDetector) Detect(frame *gocv.Mat) ([]detector.HandLandmarks, error) {
	return []detector.HandLandmarks{{Handedness: "Right", Score: 0.9}}, nil
}
func (oneHandDetector) Close() error { return nil }

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	return conn
}

func TestLandmarksHandlerStreamsSkeletons(t *testing.T) {
	if testing.Short() {
		t.Skip("requires OpenCV")
	}

	h := NewLandmarksHandler(oneHandDetector{}, frameCamera{})
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dialWS(t, srv)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}

	var frame skeletonFrame
	if err := json.Unmarshal(msg, &frame); err != nil {
		t.Fatalf("unmarshal stream message: %v", err)
	}
	if len(frame.Hands) != 1 {
		t.Errorf("got %d hands, want 1", len(frame.Hands))
	}
	if frame.Timestamp <= 0 {
		t.Errorf("timestamp = %d, want positive", frame.Timestamp)
	}
}

func TestLandmarksHandlerDropsDeadClients(t *testing.T) {
	h := &LandmarksHandler{
		detector: oneHandDetector{},
		camera:   frameCamera{},
		clients:  make(map[*websocket.Conn]struct{}),
	}

	// Plain upgrade endpoint gives us a server-side conn to subscribe
	// directly, bypassing ServeHTTP's own close detection.
	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		serverConns <- conn
	}))
	defer srv.Close()

	client := dialWS(t, srv)
	serverConn := <-serverConns
	h.clients[serverConn] = struct{}{}

	client.Close()

	// Writes to the closed peer eventually fail; send must then prune
	// the connection rather than keep writing into the void.
	deadline := time.Now().Add(2 * time.Second)
	for {
		h.send([]byte(`{"hands":[],"timestamp":1}`))
		h.mu.Lock()
		n := len(h.clients)
		h.mu.Unlock()
		if n == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("dead client still subscribed, %d remaining", n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
