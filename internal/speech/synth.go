package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// Synthesizer speaks one utterance to completion. Implementations must
// honor context cancellation to support Stop and Shutdown.
type Synthesizer interface {
	// Speak blocks until the utterance finishes or ctx is canceled.
	Speak(ctx context.Context, text string) error

	// Close releases any resources held by the synthesizer.
	Close() error
}

// utteranceTimeout caps a single utterance so a wedged backend cannot
// stall the queue forever.
const utteranceTimeout = 10 * time.Second

// commandBackends lists known TTS command lines in preference order.
// {rate} is replaced with the words-per-minute setting.
var commandBackends = []struct {
	binary string
	args   func(rate int) []string
}{
	{"espeak", func(rate int) []string { return []string{"-s", strconv.Itoa(rate)} }},
	{"say", func(rate int) []string { return []string{"-r", strconv.Itoa(rate)} }},
	{"flite", func(rate int) []string { return []string{"-t"} }},
}

// CommandSynthesizer speaks through an external TTS command (espeak,
// say, or flite, whichever is installed). One subprocess per utterance.
type CommandSynthesizer struct {
	binary string
	args   []string
}

// NewCommandSynthesizer locates a TTS command on PATH. rate is the
// speech rate in words per minute; values <= 0 use 150. Returns an
// error when no backend is installed, which callers should treat as
// "speech unavailable" rather than fatal.
func NewCommandSynthesizer(rate int) (*CommandSynthesizer, error) {
	if rate <= 0 {
		rate = 150
	}

	for _, b := range commandBackends {
		path, err := exec.LookPath(b.binary)
		if err != nil {
			continue
		}
		return &CommandSynthesizer{binary: path, args: b.args(rate)}, nil
	}

	return nil, fmt.Errorf("no speech backend found (tried espeak, say, flite)")
}

// Speak runs the TTS command with the utterance text and waits for it
// to finish. Cancellation kills the subprocess.
func (c *CommandSynthesizer) Speak(ctx context.Context, text string) error {
	ctx, cancel := context.WithTimeout(ctx, utteranceTimeout)
	defer cancel()

	args := append(append([]string{}, c.args...), text)
	cmd := exec.CommandContext(ctx, c.binary, args...)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run %s: %w", c.binary, err)
	}
	return nil
}

// Close is a no-op; each utterance runs its own subprocess.
func (c *CommandSynthesizer) Close() error {
	return nil
}
