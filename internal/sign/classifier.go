package sign

import (
	"math"

	"github.com/ayusman/signspeak/internal/detector"
)

// Classification thresholds. The normalized distance bands disambiguate
// signs that share a finger pattern (Yes vs C, Victory spread, B
// together), so they must not drift.
const (
	// MinHandScale is the minimum wrist-to-middle-tip distance in
	// pixels. Smaller hands are too unreliable to classify.
	MinHandScale = 10.0

	// ThumbBelowWristMargin is how far (pixels) the thumb tip must sit
	// below the wrist to read as thumbs-down.
	ThumbBelowWristMargin = 30.0

	// ThumbNearWristMargin is the maximum horizontal distance (pixels)
	// between thumb tip and wrist for the letter A.
	ThumbNearWristMargin = 30.0

	// CircleMax is the normalized thumb-index distance below which the
	// two tips form a circle (OK sign).
	CircleMax = 0.2

	// SpreadMin is the normalized index-middle distance above which the
	// two fingers count as spread (V sign).
	SpreadMin = 0.2

	// TogetherMax is the normalized index-middle distance below which
	// the fingers count as held together (letter B).
	TogetherMax = 0.3

	// CShapeMin and CShapeMax bound the moderate thumb-index distance
	// of the letter C, distinct from the OK sign's circle.
	CShapeMin = 0.2
	CShapeMax = 0.4
)

// Result is the outcome of classifying a single pose.
type Result struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// NoMatch is the result for poses that match no rule. Its confidence is
// 0.0 and its ID is negative.
var NoMatch = Result{ID: -1, Name: "", Confidence: 0}

// Matched reports whether the result identifies a sign.
func (r Result) Matched() bool {
	return r.ID >= 0 && r.Name != ""
}

// pose bundles everything a rule predicate may inspect: the landmarks,
// the finger states, and the scale-normalized tip distances.
type pose struct {
	hand        *detector.HandLandmarks
	fingers     Fingers
	thumbIndex  float64 // thumb tip to index tip, normalized by hand scale
	indexMiddle float64 // index tip to middle tip, normalized by hand scale
}

func (p *pose) point(i int) detector.Point3D {
	return p.hand.Points[i]
}

// rule is one entry of the ordered classification table.
type rule struct {
	id         int
	name       string
	confidence float64
	match      func(p *pose) bool
}

// rules is evaluated strictly in order, first match wins. Several
// entries share a base finger pattern and are told apart only by the
// distance predicates, so the order is part of the classifier's
// contract: do not re-sort or merge entries.
var rules = []rule{
	{8, "Good", 0.90, func(p *pose) bool {
		return onlyThumb(p.fingers) &&
			p.point(detector.ThumbTip).Y < p.point(detector.Wrist).Y
	}},
	{9, "Bad", 0.85, func(p *pose) bool {
		return noneButThumb(p.fingers) &&
			p.point(detector.ThumbTip).Y > p.point(detector.Wrist).Y+ThumbBelowWristMargin
	}},
	{3, "Yes", 0.90, func(p *pose) bool {
		return p.fingers.Thumb && p.fingers.Index &&
			!p.fingers.Middle && !p.fingers.Ring && !p.fingers.Pinky &&
			p.thumbIndex < CircleMax &&
			tipBelowPIP(p, detector.MiddleTip, detector.MiddlePIP) &&
			tipBelowPIP(p, detector.RingTip, detector.RingPIP) &&
			tipBelowPIP(p, detector.PinkyTip, detector.PinkyPIP)
	}},
	{20, "Victory", 0.85, func(p *pose) bool {
		return !p.fingers.Thumb && p.fingers.Index && p.fingers.Middle &&
			!p.fingers.Ring && !p.fingers.Pinky &&
			p.indexMiddle > SpreadMin
	}},
	{12, "More", 0.80, func(p *pose) bool {
		return !p.fingers.Thumb && p.fingers.Index &&
			!p.fingers.Middle && !p.fingers.Ring && !p.fingers.Pinky
	}},
	{10, "Stop", 0.90, func(p *pose) bool {
		return p.fingers.ExtendedCount() == 0
	}},
	{0, "Hello", 0.90, func(p *pose) bool {
		return p.fingers.ExtendedCount() == 5
	}},
	{13, "Less", 0.80, func(p *pose) bool {
		return !p.fingers.Thumb && p.fingers.Index && p.fingers.Middle &&
			p.fingers.Ring && !p.fingers.Pinky
	}},
	{14, "Water", 0.75, func(p *pose) bool {
		return !p.fingers.Thumb && p.fingers.Index && p.fingers.Middle &&
			p.fingers.Ring && p.fingers.Pinky
	}},
	{7, "I Love You", 0.85, func(p *pose) bool {
		return p.fingers.Thumb && p.fingers.Index &&
			!p.fingers.Middle && !p.fingers.Ring && p.fingers.Pinky
	}},
	{21, "A", 0.80, func(p *pose) bool {
		return onlyThumb(p.fingers) &&
			math.Abs(p.point(detector.ThumbTip).X-p.point(detector.Wrist).X) < ThumbNearWristMargin
	}},
	{22, "B", 0.80, func(p *pose) bool {
		return !p.fingers.Thumb && p.fingers.Index && p.fingers.Middle &&
			p.fingers.Ring && p.fingers.Pinky &&
			p.indexMiddle < TogetherMax
	}},
	{23, "C", 0.75, func(p *pose) bool {
		return p.fingers.Thumb && p.fingers.Index &&
			!p.fingers.Middle && !p.fingers.Ring && !p.fingers.Pinky &&
			p.thumbIndex > CShapeMin && p.thumbIndex < CShapeMax
	}},
}

func onlyThumb(f Fingers) bool {
	return f.Thumb && !f.Index && !f.Middle && !f.Ring && !f.Pinky
}

func noneButThumb(f Fingers) bool {
	return !f.Index && !f.Middle && !f.Ring && !f.Pinky
}

func tipBelowPIP(p *pose, tip, pip int) bool {
	return p.point(tip).Y > p.point(pip).Y
}

// Classifier turns hand poses into sign results by walking the ordered
// rule table. Display names come from the dictionary, falling back to
// each rule's intrinsic name.
type Classifier struct {
	dict Dictionary
}

// NewClassifier creates a Classifier with the given dictionary. A nil
// dictionary is treated as empty; intrinsic rule names are used.
func NewClassifier(dict Dictionary) *Classifier {
	return &Classifier{dict: dict}
}

// Classify evaluates the pose against the rule table and returns the
// first matching sign, or NoMatch. It never returns a confidence
// outside [0,1] and has no side effects.
//
// Poses whose hand scale falls below MinHandScale are rejected before
// any rule runs, regardless of their finger pattern.
func (c *Classifier) Classify(h *detector.HandLandmarks) Result {
	if h == nil {
		return NoMatch
	}

	fingers, ok := AnalyzeFingers(h)
	if !ok {
		return NoMatch
	}

	scale := h.HandScale()
	if scale < MinHandScale {
		return NoMatch
	}

	p := &pose{
		hand:        h,
		fingers:     fingers,
		thumbIndex:  detector.Distance2D(h.Points[detector.ThumbTip], h.Points[detector.IndexTip]) / scale,
		indexMiddle: detector.Distance2D(h.Points[detector.IndexTip], h.Points[detector.MiddleTip]) / scale,
	}

	for _, r := range rules {
		if r.match(p) {
			return Result{
				ID:         r.id,
				Name:       c.displayName(r.id, r.name),
				Confidence: r.confidence,
			}
		}
	}

	return NoMatch
}

func (c *Classifier) displayName(id int, intrinsic string) string {
	if text, ok := c.dict.Lookup(id); ok {
		return text
	}
	return intrinsic
}
