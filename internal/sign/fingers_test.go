package sign

import (
	"testing"

	"github.com/ayusman/signspeak/internal/detector"
)

func TestAnalyzeFingers(t *testing.T) {
	tests := []struct {
		name string
		hand detector.HandLandmarks
		want Fingers
	}{
		{
			name: "open palm extends all fingers",
			hand: detector.OpenPalmLandmarks(),
			want: Fingers{Thumb: true, Index: true, Middle: true, Ring: true, Pinky: true},
		},
		{
			name: "fist extends nothing",
			hand: detector.FistLandmarks(),
			want: Fingers{},
		},
		{
			name: "thumbs up extends only the thumb",
			hand: detector.ThumbsUpLandmarks(),
			want: Fingers{Thumb: true},
		},
		{
			name: "pointing extends only the index",
			hand: detector.PointingLandmarks(),
			want: Fingers{Index: true},
		},
		{
			name: "love you extends thumb index and pinky",
			hand: detector.LoveYouLandmarks(),
			want: Fingers{Thumb: true, Index: true, Pinky: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AnalyzeFingers(&tt.hand)
			if !ok {
				t.Fatal("AnalyzeFingers returned ok=false for a valid hand")
			}
			if got != tt.want {
				t.Errorf("AnalyzeFingers() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAnalyzeFingersNilHand(t *testing.T) {
	got, ok := AnalyzeFingers(nil)
	if ok {
		t.Error("expected ok=false for nil hand")
	}
	if got != (Fingers{}) {
		t.Errorf("expected zero finger state, got %+v", got)
	}
}

func TestAnalyzeFingersThumbSideways(t *testing.T) {
	// The thumb reads as extended based on horizontal displacement from
	// the wrist, not vertical position: a thumbs-down thumb is extended
	// even though its tip sits below the wrist.
	hand := detector.ThumbsDownLandmarks()
	got, ok := AnalyzeFingers(&hand)
	if !ok {
		t.Fatal("AnalyzeFingers returned ok=false")
	}
	if !got.Thumb {
		t.Error("thumbs-down thumb should read as extended")
	}
}

func TestExtendedCount(t *testing.T) {
	tests := []struct {
		name    string
		fingers Fingers
		want    int
	}{
		{"none", Fingers{}, 0},
		{"all", Fingers{Thumb: true, Index: true, Middle: true, Ring: true, Pinky: true}, 5},
		{"two", Fingers{Index: true, Middle: true}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fingers.ExtendedCount(); got != tt.want {
				t.Errorf("ExtendedCount() = %d, want %d", got, tt.want)
			}
		})
	}
}
