package speech

import (
	"context"
	"sync"
)

// MockSynthesizer is a test implementation of Synthesizer. It records
// spoken texts and can be made to block or fail on demand.
type MockSynthesizer struct {
	mu     sync.Mutex
	spoken []string
	err    error
	block  chan struct{}
}

// NewMockSynthesizer creates a MockSynthesizer.
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{}
}

// SetError makes every subsequent Speak call return err.
func (m *MockSynthesizer) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Block makes Speak wait until Unblock or context cancellation.
func (m *MockSynthesizer) Block() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.block = make(chan struct{})
}

// Unblock releases a blocked Speak call.
func (m *MockSynthesizer) Unblock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.block != nil {
		close(m.block)
		m.block = nil
	}
}

// Speak records the text, honoring Block and SetError.
func (m *MockSynthesizer) Speak(ctx context.Context, text string) error {
	m.mu.Lock()
	block := m.block
	err := m.err
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.spoken = append(m.spoken, text)
	m.mu.Unlock()
	return nil
}

// Close is a no-op for the mock.
func (m *MockSynthesizer) Close() error {
	return nil
}

// Spoken returns a copy of the texts spoken so far.
func (m *MockSynthesizer) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.spoken))
	copy(out, m.spoken)
	return out
}
