package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

// clipFrames builds frames of distinct heights so playback order is
// observable through Rows().
func clipFrames(t *testing.T, heights ...int) []gocv.Mat {
	t.Helper()
	frames := make([]gocv.Mat, 0, len(heights))
	for _, h := range heights {
		frames = append(frames, gocv.NewMatWithSize(h, 640, gocv.MatTypeCV8UC3))
	}
	t.Cleanup(func() {
		for i := range frames {
			frames[i].Close()
		}
	})
	return frames
}

func TestReplayCameraClip(t *testing.T) {
	if testing.Short() {
		t.Skip("requires OpenCV")
	}

	cam := NewReplayCamera(clipFrames(t, 120, 240), false)
	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer cam.Close()

	for _, wantRows := range []int{120, 240} {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() error: %v", err)
		}
		if frame.Rows() != wantRows {
			t.Errorf("frame rows = %d, want %d", frame.Rows(), wantRows)
		}
		frame.Close()
	}

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrReplayExhausted) {
		t.Errorf("ReadFrame() after clip end = %v, want ErrReplayExhausted", err)
	}
}

func TestReplayCameraLoop(t *testing.T) {
	if testing.Short() {
		t.Skip("requires OpenCV")
	}

	cam := NewReplayCamera(clipFrames(t, 120), true)
	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer cam.Close()

	// A looping replay never runs out.
	for i := 0; i < 3; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() iteration %d error: %v", i, err)
		}
		frame.Close()
	}
}

func TestReplayCameraRewind(t *testing.T) {
	if testing.Short() {
		t.Skip("requires OpenCV")
	}

	cam := NewReplayCamera(clipFrames(t, 120, 240), false)
	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer cam.Close()

	first, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() error: %v", err)
	}
	first.Close()

	cam.Rewind()

	again, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() after Rewind error: %v", err)
	}
	defer again.Close()
	if again.Rows() != 120 {
		t.Errorf("frame rows after Rewind = %d, want 120", again.Rows())
	}
}

func TestReplayCameraNotOpen(t *testing.T) {
	cam := NewReplayCamera(nil, false)
	if cam.IsOpen() {
		t.Error("IsOpen() = true before Open")
	}
	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() before Open = %v, want ErrCameraNotOpen", err)
	}
}

func TestReplayCameraFPS(t *testing.T) {
	cam := NewReplayCamera(nil, false)
	if got := cam.FPS(); got != DefaultFPS {
		t.Errorf("FPS() = %d, want %d", got, DefaultFPS)
	}
	cam.SetFPS(30)
	if got := cam.FPS(); got != 30 {
		t.Errorf("FPS() after SetFPS(30) = %d, want 30", got)
	}
	cam.SetFPS(0)
	if got := cam.FPS(); got != 30 {
		t.Errorf("SetFPS(0) changed rate to %d", got)
	}
}
