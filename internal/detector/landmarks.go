// Package detector provides hand detection interfaces and types for sign recognition.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a tracked landmark position. X and Y are pixel
// coordinates in the source frame (Y increases downward); Z is the
// relative depth reported by the tracker and is ignored by the sign
// classifier.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks for one hand in one frame.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Distance2D calculates the planar Euclidean distance between two points.
// Sign classification works on image-plane geometry only.
func Distance2D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// HandScale returns the wrist-to-middle-fingertip distance. Inter-finger
// distances are normalized by this value so classification thresholds
// stay resolution independent.
func (h *HandLandmarks) HandScale() float64 {
	if h == nil {
		return 0
	}
	return Distance2D(h.Points[Wrist], h.Points[MiddleTip])
}
