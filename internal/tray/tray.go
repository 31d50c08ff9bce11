// Package tray provides a system tray interface for the SignSpeak service.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onToggleDetect func(enabled bool)
	onToggleSpeech func(enabled bool)
	onQuit         func()
	detectEnabled  bool
	speechEnabled  bool
	mu             sync.RWMutex

	// Menu items stored for later updates
	menuDetect   *systray.MenuItem
	menuSpeech   *systray.MenuItem
	menuLastSign *systray.MenuItem
}

// New creates a new Tray with detection and speech enabled by default.
func New() *Tray {
	return &Tray{
		detectEnabled: true,
		speechEnabled: true,
	}
}

// OnToggleDetect sets the callback for the detection toggle.
func (t *Tray) OnToggleDetect(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggleDetect = fn
}

// OnToggleSpeech sets the callback for the speech toggle.
func (t *Tray) OnToggleSpeech(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggleSpeech = fn
}

// OnQuit sets the callback for the quit menu item.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("SignSpeak")
	systray.SetTooltip("SignSpeak Sign Language Detection")

	t.menuDetect = systray.AddMenuItem("● Detection On", "Toggle sign detection")
	t.menuSpeech = systray.AddMenuItem("● Speech On", "Toggle spoken feedback")
	systray.AddSeparator()

	t.menuLastSign = systray.AddMenuItem("Last: none", "Last committed sign")
	t.menuLastSign.Disable()
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit SignSpeak")

	go func() {
		for {
			select {
			case <-t.menuDetect.ClickedCh:
				t.handleToggleDetect()
			case <-t.menuSpeech.ClickedCh:
				t.handleToggleSpeech()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {}

func (t *Tray) handleToggleDetect() {
	t.mu.Lock()
	t.detectEnabled = !t.detectEnabled
	enabled := t.detectEnabled

	if enabled {
		t.menuDetect.SetTitle("● Detection On")
	} else {
		t.menuDetect.SetTitle("○ Detection Off")
	}

	callback := t.onToggleDetect
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleToggleSpeech() {
	t.mu.Lock()
	t.speechEnabled = !t.speechEnabled
	enabled := t.speechEnabled

	if enabled {
		t.menuSpeech.SetTitle("● Speech On")
	} else {
		t.menuSpeech.SetTitle("○ Speech Off")
	}

	callback := t.onToggleSpeech
	t.mu.Unlock()

	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetLastSign updates the last committed sign shown in the menu.
func (t *Tray) SetLastSign(name string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastSign != nil {
		if name == "" {
			t.menuLastSign.SetTitle("Last: none")
		} else {
			t.menuLastSign.SetTitle("Last: " + name)
		}
	}
}

// DetectEnabled returns the current detection toggle state.
func (t *Tray) DetectEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.detectEnabled
}
