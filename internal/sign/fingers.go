// Package sign provides rule-based classification of hand poses into
// sign-language signs.
package sign

import (
	"math"

	"github.com/ayusman/signspeak/internal/detector"
)

// Fingers holds the extended/closed state of each finger for one pose.
type Fingers struct {
	Thumb  bool
	Index  bool
	Middle bool
	Ring   bool
	Pinky  bool
}

// ExtendedCount returns how many fingers are extended (0-5).
func (f Fingers) ExtendedCount() int {
	count := 0
	for _, extended := range []bool{f.Thumb, f.Index, f.Middle, f.Ring, f.Pinky} {
		if extended {
			count++
		}
	}
	return count
}

// AnalyzeFingers derives the per-finger extended state from a hand pose.
// It is a pure function of the landmarks. The second return value is
// false when no pose is available (nil hand), in which case the finger
// state is undetermined.
//
// The thumb splays sideways rather than folding, so it counts as
// extended when its tip sits further from the wrist horizontally than
// its MCP joint. The other four fingers count as extended when the tip
// is above the PIP joint (smaller y in image coordinates).
func AnalyzeFingers(h *detector.HandLandmarks) (Fingers, bool) {
	if h == nil {
		return Fingers{}, false
	}

	wrist := h.Points[detector.Wrist]
	thumbTip := h.Points[detector.ThumbTip]
	thumbMCP := h.Points[detector.ThumbMCP]

	return Fingers{
		Thumb:  math.Abs(thumbTip.X-wrist.X) > math.Abs(thumbMCP.X-wrist.X),
		Index:  fingerExtended(h, detector.IndexTip, detector.IndexPIP),
		Middle: fingerExtended(h, detector.MiddleTip, detector.MiddlePIP),
		Ring:   fingerExtended(h, detector.RingTip, detector.RingPIP),
		Pinky:  fingerExtended(h, detector.PinkyTip, detector.PinkyPIP),
	}, true
}

func fingerExtended(h *detector.HandLandmarks, tip, pip int) bool {
	return h.Points[tip].Y < h.Points[pip].Y
}
