package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Fixture poses below use pixel coordinates with the wrist at (320, 420)
// in a nominal 640x480 frame. Finger joints for an extended finger run
// straight up from the MCP row at y=340; a curled finger keeps its tip
// below the PIP joint.

const (
	fixtureWristX = 320.0
	fixtureWristY = 420.0
	fixtureMCPY   = 340.0
)

func baseHand() HandLandmarks {
	h := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}
	h.Points[Wrist] = Point3D{X: fixtureWristX, Y: fixtureWristY}
	return h
}

// setFinger fills one non-thumb finger column. baseX is the MCP x
// position; extended fingers point straight up, curled fingers fold the
// tip back below the PIP.
func setFinger(h *HandLandmarks, mcp, pip, dip, tip int, baseX float64, extended bool) {
	h.Points[mcp] = Point3D{X: baseX, Y: fixtureMCPY}
	if extended {
		h.Points[pip] = Point3D{X: baseX, Y: 300}
		h.Points[dip] = Point3D{X: baseX, Y: 270}
		h.Points[tip] = Point3D{X: baseX, Y: 240}
		return
	}
	h.Points[pip] = Point3D{X: baseX, Y: 320}
	h.Points[dip] = Point3D{X: baseX, Y: 332}
	h.Points[tip] = Point3D{X: baseX, Y: 344}
}

func setFingers(h *HandLandmarks, index, middle, ring, pinky bool) {
	setFinger(h, IndexMCP, IndexPIP, IndexDIP, IndexTip, 300, index)
	setFinger(h, MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 320, middle)
	setFinger(h, RingMCP, RingPIP, RingDIP, RingTip, 340, ring)
	setFinger(h, PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, 360, pinky)
}

// setThumbSplayed places the thumb well to the side of the wrist with
// the tip above it (the thumbs-up / open-palm thumb).
func setThumbSplayed(h *HandLandmarks) {
	h.Points[ThumbCMC] = Point3D{X: 300, Y: 410}
	h.Points[ThumbMCP] = Point3D{X: 280, Y: 395}
	h.Points[ThumbIP] = Point3D{X: 260, Y: 385}
	h.Points[ThumbTip] = Point3D{X: 240, Y: 380}
}

// setThumbFolded tucks the thumb against the palm: tip closer to the
// wrist column than the MCP, so the thumb reads as closed.
func setThumbFolded(h *HandLandmarks) {
	h.Points[ThumbCMC] = Point3D{X: 305, Y: 405}
	h.Points[ThumbMCP] = Point3D{X: 290, Y: 390}
	h.Points[ThumbIP] = Point3D{X: 300, Y: 380}
	h.Points[ThumbTip] = Point3D{X: 310, Y: 375}
}

// OpenPalmLandmarks returns an open hand: all five fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	h := baseHand()
	setThumbSplayed(&h)
	setFingers(&h, true, true, true, true)
	return h
}

// FistLandmarks returns a closed fist: all five fingers curled.
func FistLandmarks() HandLandmarks {
	h := baseHand()
	setThumbFolded(&h)
	setFingers(&h, false, false, false, false)
	return h
}

// ThumbsUpLandmarks returns a thumbs-up: thumb splayed with the tip
// above the wrist, all other fingers curled.
func ThumbsUpLandmarks() HandLandmarks {
	h := baseHand()
	setThumbSplayed(&h)
	setFingers(&h, false, false, false, false)
	return h
}

// ThumbsDownLandmarks returns a thumbs-down: thumb splayed with the tip
// well below the wrist, other fingers curled.
func ThumbsDownLandmarks() HandLandmarks {
	h := baseHand()
	h.Points[ThumbCMC] = Point3D{X: 300, Y: 430}
	h.Points[ThumbMCP] = Point3D{X: 280, Y: 440}
	h.Points[ThumbIP] = Point3D{X: 260, Y: 455}
	h.Points[ThumbTip] = Point3D{X: 240, Y: 470}
	setFingers(&h, false, false, false, false)
	return h
}

// OKSignLandmarks returns an OK sign: thumb and index tips touching in
// a circle, the remaining fingers curled.
func OKSignLandmarks() HandLandmarks {
	h := baseHand()
	h.Points[ThumbCMC] = Point3D{X: 310, Y: 400}
	h.Points[ThumbMCP] = Point3D{X: 312, Y: 370}
	h.Points[ThumbIP] = Point3D{X: 305, Y: 330}
	h.Points[ThumbTip] = Point3D{X: 302, Y: 272}
	setFingers(&h, false, false, false, false)
	h.Points[IndexMCP] = Point3D{X: 300, Y: fixtureMCPY}
	h.Points[IndexPIP] = Point3D{X: 300, Y: 300}
	h.Points[IndexDIP] = Point3D{X: 298, Y: 285}
	h.Points[IndexTip] = Point3D{X: 296, Y: 270}
	return h
}

// VictoryLandmarks returns a V sign: index and middle extended and
// spread apart, thumb, ring and pinky curled.
func VictoryLandmarks() HandLandmarks {
	h := baseHand()
	setThumbFolded(&h)
	setFingers(&h, false, true, false, false)
	h.Points[IndexMCP] = Point3D{X: 300, Y: fixtureMCPY}
	h.Points[IndexPIP] = Point3D{X: 295, Y: 300}
	h.Points[IndexDIP] = Point3D{X: 287, Y: 272}
	h.Points[IndexTip] = Point3D{X: 280, Y: 245}
	return h
}

// PointingLandmarks returns a pointing hand: index only.
func PointingLandmarks() HandLandmarks {
	h := baseHand()
	setThumbFolded(&h)
	setFingers(&h, true, false, false, false)
	return h
}

// ThreeFingerLandmarks returns index, middle and ring extended with
// thumb and pinky curled.
func ThreeFingerLandmarks() HandLandmarks {
	h := baseHand()
	setThumbFolded(&h)
	setFingers(&h, true, true, true, false)
	return h
}

// FourFingerLandmarks returns all fingers except the thumb extended.
func FourFingerLandmarks() HandLandmarks {
	h := baseHand()
	setThumbFolded(&h)
	setFingers(&h, true, true, true, true)
	return h
}

// LoveYouLandmarks returns the I-Love-You sign: thumb, index and pinky
// extended, middle and ring curled.
func LoveYouLandmarks() HandLandmarks {
	h := baseHand()
	setThumbSplayed(&h)
	setFingers(&h, true, false, false, true)
	return h
}

// LetterALandmarks returns the letter A: a fist with the thumb resting
// against its side, close to the wrist column and level with it.
func LetterALandmarks() HandLandmarks {
	h := baseHand()
	h.Points[ThumbCMC] = Point3D{X: 310, Y: 410}
	h.Points[ThumbMCP] = Point3D{X: 310, Y: 400}
	h.Points[ThumbIP] = Point3D{X: 328, Y: 415}
	h.Points[ThumbTip] = Point3D{X: 340, Y: 430}
	setFingers(&h, false, false, false, false)
	return h
}

// LetterCLandmarks returns the letter C: thumb and index extended and
// curved toward each other at a moderate distance, other fingers curled.
func LetterCLandmarks() HandLandmarks {
	h := baseHand()
	h.Points[ThumbCMC] = Point3D{X: 310, Y: 400}
	h.Points[ThumbMCP] = Point3D{X: 312, Y: 370}
	h.Points[ThumbIP] = Point3D{X: 306, Y: 330}
	h.Points[ThumbTip] = Point3D{X: 300, Y: 293}
	setFingers(&h, false, false, false, false)
	h.Points[IndexMCP] = Point3D{X: 300, Y: fixtureMCPY}
	h.Points[IndexPIP] = Point3D{X: 300, Y: 300}
	h.Points[IndexDIP] = Point3D{X: 298, Y: 285}
	h.Points[IndexTip] = Point3D{X: 296, Y: 270}
	return h
}

// TinyHandLandmarks returns a degenerate pose whose wrist-to-middle-tip
// distance is below the minimum hand scale.
func TinyHandLandmarks() HandLandmarks {
	h := HandLandmarks{Handedness: "Right", Score: 0.9}
	for i := 0; i < NumLandmarks; i++ {
		h.Points[i] = Point3D{X: 320 + float64(i%3), Y: 420 - float64(i%4)}
	}
	return h
}
