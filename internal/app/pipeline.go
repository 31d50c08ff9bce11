package app

import (
	"log"
	"time"
)

// runPipeline is the main detection loop. It reads frames at an
// adaptive rate, gates hand detection on motion, and feeds every
// processed frame's classification into the session so the commit state
// machine sees gaps as well as signs.
//
// Idle/active switching: start idle at 5 FPS; motion switches to 15
// FPS; 2 s without motion drops back to idle. Frames without a detected
// hand still advance the session with a no-match observation, which is
// what drives the gap timeout.
func (a *App) runPipeline(stopCh <-chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			active, _ := a.gate.Sample(frame)

			if active {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			det := a.Detector()
			if !activeMode || det == nil {
				frame.Close()
				// Still an observed gap for the commit state machine.
				a.processHands(nil, time.Now())
				continue
			}

			hands, err := det.Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			if committed := a.processHands(hands, time.Now()); committed != "" {
				log.Printf("Committed sign: %s", committed)
				if fn := a.commitCallback(); fn != nil {
					fn(committed)
				}
			}
		}
	}
}
