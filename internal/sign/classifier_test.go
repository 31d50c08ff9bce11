package sign

import (
	"testing"

	"github.com/ayusman/signspeak/internal/detector"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name     string
		hand     detector.HandLandmarks
		wantID   int
		wantName string
		wantConf float64
	}{
		{"open palm is Hello", detector.OpenPalmLandmarks(), 0, "Hello", 0.90},
		{"fist is Stop", detector.FistLandmarks(), 10, "Stop", 0.90},
		{"thumbs up is Good", detector.ThumbsUpLandmarks(), 8, "Good", 0.90},
		{"thumbs down is Bad", detector.ThumbsDownLandmarks(), 9, "Bad", 0.85},
		{"ok sign is Yes", detector.OKSignLandmarks(), 3, "Yes", 0.90},
		{"spread v is Victory", detector.VictoryLandmarks(), 20, "Victory", 0.85},
		{"pointing is More", detector.PointingLandmarks(), 12, "More", 0.80},
		{"three fingers is Less", detector.ThreeFingerLandmarks(), 13, "Less", 0.80},
		{"thumb index and pinky is I Love You", detector.LoveYouLandmarks(), 7, "I Love You", 0.85},
		{"tucked thumb fist is letter A", detector.LetterALandmarks(), 21, "A", 0.80},
		{"open circle is letter C", detector.LetterCLandmarks(), 23, "C", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(&tt.hand)
			if got.ID != tt.wantID || got.Name != tt.wantName {
				t.Errorf("Classify() = {%d %q}, want {%d %q}", got.ID, got.Name, tt.wantID, tt.wantName)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("Classify() confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
			if !got.Matched() {
				t.Error("expected a matched result")
			}
		})
	}
}

func TestClassifyNilHand(t *testing.T) {
	c := NewClassifier(nil)
	if got := c.Classify(nil); got.Matched() {
		t.Errorf("expected NoMatch for nil hand, got %+v", got)
	}
}

func TestClassifyRejectsTinyHand(t *testing.T) {
	c := NewClassifier(nil)
	hand := detector.TinyHandLandmarks()
	got := c.Classify(&hand)
	if got.Matched() {
		t.Errorf("expected NoMatch below the minimum hand scale, got %+v", got)
	}
	if got.ID != -1 {
		t.Errorf("NoMatch ID = %d, want -1", got.ID)
	}
	if got.Confidence != 0 {
		t.Errorf("NoMatch confidence = %v, want 0", got.Confidence)
	}
}

// Four extended fingers satisfy both the Water rule and the letter B
// rule when the fingers are held together. Water comes first in the
// table, so it always wins; re-sorting the rules would silently change
// the result.
func TestClassifyRuleOrderFourFingers(t *testing.T) {
	c := NewClassifier(nil)
	hand := detector.FourFingerLandmarks()
	got := c.Classify(&hand)
	if got.ID != 14 || got.Name != "Water" {
		t.Errorf("Classify() = {%d %q}, want {14 %q}", got.ID, got.Name, "Water")
	}
}

func TestClassifyDictionaryOverride(t *testing.T) {
	c := NewClassifier(Dictionary{0: "Hola", 10: "Alto"})

	open := detector.OpenPalmLandmarks()
	if got := c.Classify(&open); got.Name != "Hola" {
		t.Errorf("dictionary name = %q, want %q", got.Name, "Hola")
	}

	// Ids missing from the dictionary fall back to intrinsic names.
	up := detector.ThumbsUpLandmarks()
	if got := c.Classify(&up); got.Name != "Good" {
		t.Errorf("fallback name = %q, want %q", got.Name, "Good")
	}
}

func TestClassifyNoSideEffects(t *testing.T) {
	c := NewClassifier(nil)
	hand := detector.VictoryLandmarks()
	before := hand

	c.Classify(&hand)
	c.Classify(&hand)

	if hand != before {
		t.Error("Classify mutated the input landmarks")
	}
}

func TestNoMatchIsNotMatched(t *testing.T) {
	if NoMatch.Matched() {
		t.Error("NoMatch must not report as matched")
	}
}
