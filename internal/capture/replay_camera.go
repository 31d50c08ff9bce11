package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// ErrReplayExhausted is returned by ReadFrame once a non-looping replay
// has served its last frame.
var ErrReplayExhausted = errors.New("replay exhausted")

// ReplayCamera serves a fixed sequence of frames in place of a live
// webcam. Tests feed recorded signing clips through the pipeline with
// it, so detection and commit behavior can be exercised without camera
// hardware.
type ReplayCamera struct {
	mu      sync.Mutex
	frames  []gocv.Mat
	index   int
	loop    bool
	fps     int
	running bool
}

// NewReplayCamera builds a replay source over frames. When loop is true
// the sequence repeats from the start after the last frame; otherwise
// ReadFrame returns ErrReplayExhausted once the clip ends. The frames
// are borrowed, not copied; the caller keeps ownership and closes them.
func NewReplayCamera(frames []gocv.Mat, loop bool) *ReplayCamera {
	return &ReplayCamera{
		frames: frames,
		loop:   loop,
		fps:    DefaultFPS,
	}
}

// Open marks the replay as running. It never fails; it exists so
// callers can treat live and replay sources alike.
func (c *ReplayCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
	return nil
}

// Close stops the replay. The frames themselves are left open for the
// owner to release.
func (c *ReplayCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	return nil
}

// ReadFrame returns a clone of the next frame in the sequence. The
// caller owns the clone and must close it.
func (c *ReplayCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil, ErrCameraNotOpen
	}
	if len(c.frames) == 0 {
		return nil, ErrReplayExhausted
	}
	if c.index >= len(c.frames) {
		if !c.loop {
			return nil, ErrReplayExhausted
		}
		c.index = 0
	}
	frame := c.frames[c.index].Clone()
	c.index++
	return &frame, nil
}

// SetFPS records the rate the replay reports. Replays are not paced;
// the value only informs the pipeline's frame interval.
func (c *ReplayCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fps = fps
}

// FPS returns the reported frame rate.
func (c *ReplayCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

// IsOpen reports whether the replay is running.
func (c *ReplayCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Rewind restarts the sequence from the first frame.
func (c *ReplayCamera) Rewind() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = 0
}
