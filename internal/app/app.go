// Package app wires the SignSpeak detection pipeline together: camera
// capture, motion gating, hand detection, sign classification, and the
// commit session.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/signspeak/internal/capture"
	"github.com/ayusman/signspeak/internal/detector"
	"github.com/ayusman/signspeak/internal/session"
	"github.com/ayusman/signspeak/internal/sign"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds without motion before
	// switching back to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Session      *session.Session
	Classifier   *sign.Classifier
	CameraID     int
	Mirror       bool
	MotionThresh float64
}

// App runs the continuous detection pipeline against a session.
type App struct {
	config     Config
	camera     capture.Camera
	gate       *capture.ActivityGate
	detector   detector.Detector
	classifier *sign.Classifier
	session    *session.Session
	onCommit   func(sign string)
	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID, config.Mirror),
		gate:       capture.NewActivityGate(config.MotionThresh),
		classifier: config.Classifier,
		session:    config.Session,
		enabled:    true,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables sign detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether sign detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// OnCommit sets a callback invoked with the sign text whenever the
// pipeline commits a sign to the sentence.
func (a *App) OnCommit(fn func(sign string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onCommit = fn
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.gate.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// ActivityGate returns the gate that decides when frames reach the
// detector.
func (a *App) ActivityGate() *capture.ActivityGate {
	return a.gate
}

// Session returns the detection session.
func (a *App) Session() *session.Session {
	return a.session
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

func (a *App) commitCallback() func(string) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.onCommit
}

// processHands classifies the first detected hand (single-hand system)
// and advances the session. It returns the committed sign text, if any.
func (a *App) processHands(hands []detector.HandLandmarks, now time.Time) string {
	result := sign.NoMatch
	if len(hands) > 0 {
		result = a.classifier.Classify(&hands[0])
	}
	return a.session.Process(result, now)
}
