package server

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"gocv.io/x/gocv"

	"github.com/ayusman/signspeak/internal/session"
	"github.com/ayusman/signspeak/internal/speech"
)

// Overlay colors (BGR order is irrelevant for color.RGBA here; gocv
// handles the conversion).
var (
	overlayGreen = color.RGBA{G: 255, A: 255}
	overlayWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	overlayRed   = color.RGBA{R: 255, A: 255}
)

// sentenceWrapWidth is the maximum characters per overlay line.
const sentenceWrapWidth = 40

// drawOverlay renders the live detection state onto a frame: current
// candidate sign with confidence, the sentence so far (wrapped), and a
// speech on/off indicator in the bottom-right corner.
func drawOverlay(frame *gocv.Mat, sess *session.Session, dispatcher *speech.Dispatcher) {
	if sess == nil {
		return
	}

	if name, conf, ok := sess.Candidate(); ok {
		gocv.PutText(frame,
			fmt.Sprintf("Sign: %s (%.2f)", name, conf),
			image.Point{X: 10, Y: 30},
			gocv.FontHersheySimplex, 1, overlayGreen, 2)
	}

	y := 70
	for _, line := range wrapText(sess.Text(), sentenceWrapWidth) {
		gocv.PutText(frame, line,
			image.Point{X: 10, Y: y},
			gocv.FontHersheySimplex, 0.7, overlayWhite, 2)
		y += 30
	}

	speechOn := sess.SpeechEnabled() && dispatcher.Enabled()
	label, labelColor := "Speech: ON", overlayGreen
	if !speechOn {
		label, labelColor = "Speech: OFF", overlayRed
	}
	gocv.PutText(frame, label,
		image.Point{X: frame.Cols() - 160, Y: frame.Rows() - 30},
		gocv.FontHersheySimplex, 0.6, labelColor, 2)
}

// wrapText splits text into lines of at most width characters, breaking
// on word boundaries. Width is counted in runes, not bytes: dictionary
// entries are user-supplied and need not be ASCII.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}

	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if utf8.RuneCountInString(candidate) < width {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
