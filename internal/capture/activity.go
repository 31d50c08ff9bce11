package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

const (
	// activityBlurKernel smooths each frame before differencing. Signing
	// hands are large in frame, so a heavy blur is fine; it suppresses
	// sensor noise and webcam auto-exposure flicker that would otherwise
	// wake the tracker on an empty scene.
	activityBlurKernel = 21

	// activityDeltaMin is the per-pixel intensity change that counts as
	// activity after blurring.
	activityDeltaMin = 25

	// DefaultActivityPercent is the fraction of changed pixels (in
	// percent) above which a frame is considered active. A hand entering
	// the frame at typical webcam distance covers well over this; small
	// background disturbances stay below it.
	DefaultActivityPercent = 1.0
)

// ActivityGate decides whether anything is moving in front of the camera.
// The landmark tracker is expensive, so the pipeline only hands frames to
// it while the gate reports activity; a signer raising a hand into view
// trips the gate, and a static empty scene lets the tracker idle.
//
// The gate compares each frame against the previous one, so it reacts to
// the hand entering or moving, not to its mere presence. The session layer
// tolerates short landmark dropouts, which covers the moment a held sign
// goes still.
type ActivityGate struct {
	mu       sync.Mutex
	percent  float64
	prevGray gocv.Mat
	primed   bool
}

// NewActivityGate returns a gate that reports activity when more than
// percent of the frame's pixels changed since the previous sample. A
// non-positive percent falls back to DefaultActivityPercent.
func NewActivityGate(percent float64) *ActivityGate {
	if percent <= 0 {
		percent = DefaultActivityPercent
	}
	return &ActivityGate{
		percent:  percent,
		prevGray: gocv.NewMat(),
	}
}

// Sample examines one frame and reports whether it shows activity,
// along with the measured percentage of changed pixels. The first frame
// after construction or Reset only primes the baseline and reports no
// activity.
func (g *ActivityGate) Sample(frame *gocv.Mat) (bool, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	gocv.GaussianBlur(gray, &gray, image.Pt(activityBlurKernel, activityBlurKernel), 0, 0, gocv.BorderDefault)

	if !g.primed {
		gray.CopyTo(&g.prevGray)
		g.primed = true
		return false, 0
	}

	delta := gocv.NewMat()
	defer delta.Close()
	gocv.AbsDiff(g.prevGray, gray, &delta)
	gocv.Threshold(delta, &delta, activityDeltaMin, 255, gocv.ThresholdBinary)

	changed := gocv.CountNonZero(delta)
	total := delta.Rows() * delta.Cols()
	gray.CopyTo(&g.prevGray)

	if total == 0 {
		return false, 0
	}
	measured := float64(changed) / float64(total) * 100
	return measured > g.percent, measured
}

// Reset discards the baseline frame. The next Sample primes a fresh one;
// call it after the camera source changes so the gate does not flag the
// scene switch itself as activity.
func (g *ActivityGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.primed = false
}

// SetPercent changes the activity threshold. Non-positive values are
// ignored.
func (g *ActivityGate) SetPercent(percent float64) {
	if percent <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.percent = percent
}

// Percent returns the current activity threshold.
func (g *ActivityGate) Percent() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.percent
}

// Close releases the retained baseline frame. Sample must not be called
// after Close.
func (g *ActivityGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.primed = false
	g.prevGray.Close()
	g.prevGray = gocv.NewMat()
}
