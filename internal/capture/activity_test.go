package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

// uniformFrame returns a 640x480 BGR frame filled with a single
// intensity. Black-to-white transitions stand in for a hand sweeping
// into an otherwise empty scene.
func uniformFrame(t *testing.T, v float64) gocv.Mat {
	t.Helper()
	m := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	m.SetTo(gocv.NewScalar(v, v, v, 0))
	return m
}

func TestNewActivityGateThreshold(t *testing.T) {
	if testing.Short() {
		t.Skip("requires OpenCV")
	}

	tests := []struct {
		name    string
		percent float64
		want    float64
	}{
		{"explicit", 2.5, 2.5},
		{"zero falls back to default", 0, DefaultActivityPercent},
		{"negative falls back to default", -3, DefaultActivityPercent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewActivityGate(tt.percent)
			defer g.Close()
			if got := g.Percent(); got != tt.want {
				t.Errorf("Percent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActivityGateStaticScene(t *testing.T) {
	if testing.Short() {
		t.Skip("requires OpenCV")
	}

	g := NewActivityGate(DefaultActivityPercent)
	defer g.Close()

	scene := uniformFrame(t, 0)
	defer scene.Close()

	if active, _ := g.Sample(&scene); active {
		t.Error("priming frame should not report activity")
	}

	// An unchanged scene keeps the gate quiet, so the tracker idles.
	again := uniformFrame(t, 0)
	defer again.Close()
	if active, measured := g.Sample(&again); active {
		t.Errorf("static scene reported active, measured %f%%", measured)
	}
}

func TestActivityGateHandEntersFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("requires OpenCV")
	}

	g := NewActivityGate(DefaultActivityPercent)
	defer g.Close()

	empty := uniformFrame(t, 0)
	defer empty.Close()
	g.Sample(&empty)

	// Whole-frame change, far beyond what a signer's hand would cover.
	hand := uniformFrame(t, 255)
	defer hand.Close()
	active, measured := g.Sample(&hand)
	if !active {
		t.Errorf("frame-wide change not reported active, measured %f%%", measured)
	}
	if measured <= DefaultActivityPercent {
		t.Errorf("measured %f%%, want more than %f%%", measured, DefaultActivityPercent)
	}
}

func TestActivityGateHighThresholdStaysQuiet(t *testing.T) {
	if testing.Short() {
		t.Skip("requires OpenCV")
	}

	// With a threshold above 100% nothing can trip the gate.
	g := NewActivityGate(150)
	defer g.Close()

	empty := uniformFrame(t, 0)
	defer empty.Close()
	g.Sample(&empty)

	hand := uniformFrame(t, 255)
	defer hand.Close()
	if active, _ := g.Sample(&hand); active {
		t.Error("gate tripped below its threshold")
	}
}

func TestActivityGateReset(t *testing.T) {
	if testing.Short() {
		t.Skip("requires OpenCV")
	}

	g := NewActivityGate(DefaultActivityPercent)
	defer g.Close()

	dark := uniformFrame(t, 0)
	defer dark.Close()
	g.Sample(&dark)

	g.Reset()

	// After Reset the next frame only re-primes the baseline, even
	// though it differs from the frame seen before the reset.
	bright := uniformFrame(t, 255)
	defer bright.Close()
	if active, _ := g.Sample(&bright); active {
		t.Error("first frame after Reset should not report activity")
	}
}

func TestActivityGateSetPercent(t *testing.T) {
	if testing.Short() {
		t.Skip("requires OpenCV")
	}

	g := NewActivityGate(1.0)
	defer g.Close()

	g.SetPercent(4.5)
	if got := g.Percent(); got != 4.5 {
		t.Errorf("Percent() = %v, want 4.5", got)
	}

	g.SetPercent(0)
	g.SetPercent(-2)
	if got := g.Percent(); got != 4.5 {
		t.Errorf("non-positive SetPercent changed threshold to %v", got)
	}
}

func TestActivityGateEmptyFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("requires OpenCV")
	}

	g := NewActivityGate(DefaultActivityPercent)
	defer g.Close()

	empty := gocv.NewMat()
	defer empty.Close()
	if active, measured := g.Sample(&empty); active || measured != 0 {
		t.Errorf("Sample(empty) = (%v, %v), want (false, 0)", active, measured)
	}
	if active, measured := g.Sample(nil); active || measured != 0 {
		t.Errorf("Sample(nil) = (%v, %v), want (false, 0)", active, measured)
	}
}

func TestActivityGateCloseAndReuse(t *testing.T) {
	if testing.Short() {
		t.Skip("requires OpenCV")
	}

	g := NewActivityGate(DefaultActivityPercent)
	g.Close()
	g.Close()

	// Close drops the baseline, so the gate re-primes on its next
	// frame just like a fresh one.
	frame := uniformFrame(t, 128)
	defer frame.Close()
	if active, _ := g.Sample(&frame); active {
		t.Error("first frame after Close should not report activity")
	}
	g.Close()
}
