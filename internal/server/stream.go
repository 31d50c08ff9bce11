package server

import (
	"fmt"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/signspeak/internal/capture"
	"github.com/ayusman/signspeak/internal/session"
	"github.com/ayusman/signspeak/internal/speech"
)

// StreamHandler serves MJPEG frames from the camera with the detection
// overlay rendered on top. Detection itself runs in the app pipeline;
// the stream only reads the session's current state.
type StreamHandler struct {
	camera  capture.Camera
	session *session.Session
	speech  *speech.Dispatcher
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(camera capture.Camera, sess *session.Session, sp *speech.Dispatcher) *StreamHandler {
	return &StreamHandler{camera: camera, session: sess, speech: sp}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		frame, err := h.camera.ReadFrame()
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		drawOverlay(frame, h.session, h.speech)

		buf, err := gocv.IMEncode(".jpg", *frame)
		frame.Close()
		if err != nil {
			continue
		}

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", buf.Len())
		w.Write(buf.GetBytes())
		fmt.Fprintf(w, "\r\n")
		buf.Close()

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(66 * time.Millisecond) // ~15 FPS
	}
}
