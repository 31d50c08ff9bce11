package session

import (
	"sync"
	"time"

	"github.com/ayusman/signspeak/internal/sign"
)

// Default timing parameters for the commit state machine.
const (
	// DefaultConfidenceThreshold is the minimum classification
	// confidence for an observation to count.
	DefaultConfidenceThreshold = 0.4

	// DefaultHoldDuration is how long the same sign must be observed
	// continuously before it commits to the sentence.
	DefaultHoldDuration = time.Second

	// GapTimeout is the maximum silence before an in-progress candidate
	// is abandoned without committing.
	GapTimeout = 500 * time.Millisecond
)

// Speaker receives committed sign text for audio playback. Enqueue must
// never block.
type Speaker interface {
	Enqueue(text string)
}

// HistorySink receives cleared sentences for persistent archival, in
// addition to the in-memory history kept by the Sentence.
type HistorySink interface {
	Archive(text string)
}

// Config holds the runtime-adjustable detection parameters. Changes
// take effect on the next frame.
type Config struct {
	ConfidenceThreshold float64
	HoldDuration        time.Duration
}

// DefaultConfig returns the default detection parameters.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: DefaultConfidenceThreshold,
		HoldDuration:        DefaultHoldDuration,
	}
}

// Session debounces the per-frame classification stream into committed
// sentence tokens. Each session owns its own state; two sessions never
// share commit state. All methods are safe for concurrent use: the
// video loop and the single-image detect endpoint may drive the same
// session.
type Session struct {
	mu       sync.Mutex
	cfg      Config
	sentence *Sentence
	speaker  Speaker
	sink     HistorySink

	speechEnabled bool

	// Commit state machine: Idle (holding == false) or Holding.
	holding   bool
	holdID    int
	holdStart time.Time

	lastObservation time.Time
	lastSpoken      string

	// Last candidate seen with any confidence, for display overlays.
	candidateName string
	candidateConf float64
}

// New creates a Session with the given config.
func New(cfg Config) *Session {
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if cfg.HoldDuration <= 0 {
		cfg.HoldDuration = DefaultHoldDuration
	}
	return &Session{
		cfg:           cfg,
		sentence:      NewSentence(),
		speechEnabled: true,
	}
}

// SetSpeaker sets the speech collaborator notified on commits.
func (s *Session) SetSpeaker(sp Speaker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speaker = sp
}

// SetHistorySink sets the persistent archive for cleared sentences.
func (s *Session) SetHistorySink(sink HistorySink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink = sink
}

// Process advances the commit state machine with one classification
// observation. It returns the committed sign text when this observation
// completed a hold, or "" otherwise.
//
// An observation qualifies when it matched a sign and its confidence
// meets the threshold. Non-qualifying observations reset the machine to
// idle once the gap timeout elapses; the committed sentence is never
// touched by a reset. A qualifying observation of the held sign commits
// after the hold duration, then returns to idle so a continuously held
// pose cannot retrigger every frame.
func (s *Session) Process(res sign.Result, now time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	qualifying := res.Matched() && res.Confidence >= s.cfg.ConfidenceThreshold

	if res.Matched() {
		s.candidateName = res.Name
		s.candidateConf = res.Confidence
	}

	if !qualifying {
		if now.Sub(s.lastObservation) > GapTimeout {
			s.holding = false
			s.candidateName = ""
			s.candidateConf = 0
		}
		return ""
	}

	s.lastObservation = now

	if s.holding && s.holdID == res.ID {
		if now.Sub(s.holdStart) < s.cfg.HoldDuration {
			return ""
		}
		// Held long enough. Back to idle either way so the pose must be
		// released and re-held for a repeat.
		s.holding = false
		if !s.sentence.Append(res.Name) {
			return ""
		}
		if s.speechEnabled && s.speaker != nil && res.Name != s.lastSpoken {
			s.speaker.Enqueue(res.Name)
		}
		s.lastSpoken = res.Name
		return res.Name
	}

	s.holding = true
	s.holdID = res.ID
	s.holdStart = now
	return ""
}

// Candidate returns the most recent candidate sign and confidence for
// display overlays. ok is false when no candidate is live.
func (s *Session) Candidate() (name string, confidence float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.candidateName, s.candidateConf, s.candidateName != ""
}

// Text returns the current sentence text.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sentence.Text()
}

// Words returns a copy of the current sentence tokens.
func (s *Session) Words() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sentence.Words()
}

// History returns the cleared sentences, oldest first.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sentence.History()
}

// Clear archives and empties the current sentence, returning the
// archived text ("" when the sentence was already empty).
func (s *Session) Clear() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := s.sentence.Clear()
	s.lastSpoken = ""
	if text != "" && s.sink != nil {
		s.sink.Archive(text)
	}
	return text
}

// RemoveLast removes the last committed token.
func (s *Session) RemoveLast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sentence.RemoveLast()
	s.lastSpoken = ""
}

// Config returns the current detection parameters.
func (s *Session) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetConfig updates the detection parameters. Non-positive fields keep
// their current values.
func (s *Session) SetConfig(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg.ConfidenceThreshold > 0 {
		s.cfg.ConfidenceThreshold = cfg.ConfidenceThreshold
	}
	if cfg.HoldDuration > 0 {
		s.cfg.HoldDuration = cfg.HoldDuration
	}
}

// SpeechEnabled reports whether commits are forwarded to the speaker.
func (s *Session) SpeechEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speechEnabled
}

// SetSpeechEnabled toggles forwarding of commits to the speaker.
func (s *Session) SetSpeechEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speechEnabled = enabled
	if !enabled {
		s.lastSpoken = ""
	}
}
