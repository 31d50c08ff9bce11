package api

import (
	"io"
	"log"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/signspeak/internal/detector"
	"github.com/ayusman/signspeak/internal/session"
	"github.com/ayusman/signspeak/internal/sign"
)

// maxDetectBody caps uploaded frames at 8 MiB.
const maxDetectBody = 8 << 20

// DetectHandler serves POST /api/detect: classify a single uploaded
// JPEG/PNG frame against the shared session. The session serializes
// state, so this endpoint can run alongside the continuous video loop.
type DetectHandler struct {
	detector   detector.Detector
	classifier *sign.Classifier
	session    *session.Session
}

// NewDetectHandler creates a DetectHandler.
func NewDetectHandler(d detector.Detector, c *sign.Classifier, s *session.Session) *DetectHandler {
	return &DetectHandler{detector: d, classifier: c, session: s}
}

type detectResponse struct {
	Sign       string  `json:"sign,omitempty"`
	Confidence float64 `json:"confidence"`
	Committed  string  `json:"committed,omitempty"`
	Sentence   string  `json:"sentence"`
}

// ServeHTTP implements the http.Handler interface.
func (h *DetectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	data, err := h.readImage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image provided")
		return
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil || mat.Empty() {
		writeError(w, http.StatusBadRequest, "Invalid image")
		return
	}
	defer mat.Close()

	hands, err := h.detector.Detect(&mat)
	if err != nil {
		log.Printf("detect: %v", err)
		writeError(w, http.StatusInternalServerError, "Detection failed")
		return
	}

	// Single-hand system: classify the first hand only. No hands is a
	// valid observation and still drives the gap timeout.
	result := sign.NoMatch
	if len(hands) > 0 {
		result = h.classifier.Classify(&hands[0])
	}

	committed := h.session.Process(result, time.Now())

	writeJSON(w, http.StatusOK, detectResponse{
		Sign:       result.Name,
		Confidence: result.Confidence,
		Committed:  committed,
		Sentence:   h.session.Text(),
	})
}

// readImage accepts either a multipart "image" field or a raw image
// body.
func (h *DetectHandler) readImage(r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxDetectBody)

	if err := r.ParseMultipartForm(maxDetectBody); err == nil {
		file, _, err := r.FormFile("image")
		if err == nil {
			defer file.Close()
			return io.ReadAll(file)
		}
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	return data, nil
}
