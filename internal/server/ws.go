package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/signspeak/internal/capture"
	"github.com/ayusman/signspeak/internal/detector"
)

// streamInterval paces the landmark stream at roughly the pipeline's
// active frame rate, so the browser skeleton keeps up with signing
// without outrunning the tracker.
const streamInterval = 66 * time.Millisecond

// The UI is served from the same process on localhost, so any origin
// the browser presents is ours.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// skeletonFrame is one message on the landmark stream: the hands seen
// in a single camera frame plus the capture instant, which the UI uses
// to drop stale frames after a reconnect.
type skeletonFrame struct {
	Hands     []detector.HandLandmarks `json:"hands"`
	Timestamp int64                    `json:"timestamp"`
}

// LandmarksHandler streams per-frame hand skeletons to browser clients
// over WebSocket, so the signing overlay can render joints without
// running its own detection pass.
type LandmarksHandler struct {
	detector detector.Detector
	camera   capture.Camera

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewLandmarksHandler builds the handler and starts its stream loop.
// The loop only touches the camera while at least one client is
// subscribed.
func NewLandmarksHandler(d detector.Detector, c capture.Camera) *LandmarksHandler {
	h := &LandmarksHandler{
		detector: d,
		camera:   c,
		clients:  make(map[*websocket.Conn]struct{}),
	}
	go h.stream()
	return h
}

// ServeHTTP upgrades the request and subscribes the connection until
// the client goes away.
func (h *LandmarksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Clients never send payloads; reading just detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *LandmarksHandler) stream() {
	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	for range ticker.C {
		h.mu.Lock()
		idle := len(h.clients) == 0
		h.mu.Unlock()
		if idle {
			continue
		}

		frame, err := h.camera.ReadFrame()
		if err != nil {
			continue
		}
		hands, err := h.detector.Detect(frame)
		frame.Close()
		if err != nil {
			continue
		}

		msg, err := json.Marshal(skeletonFrame{
			Hands:     hands,
			Timestamp: time.Now().UnixMilli(),
		})
		if err != nil {
			continue
		}
		h.send(msg)
	}
}

// send delivers one message to every subscriber and drops connections
// whose writes fail, so a vanished browser does not hold a slot until
// its reader notices.
func (h *LandmarksHandler) send(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}
