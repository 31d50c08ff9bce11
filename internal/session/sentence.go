// Package session owns the per-session detection state: the sign-commit
// state machine and the sentence being built from committed signs.
package session

import "strings"

// Sentence is the ordered list of committed sign tokens plus the
// history of previously cleared sentences. It is not safe for
// concurrent use; Session serializes access.
type Sentence struct {
	words   []string
	history []string
}

// NewSentence creates an empty sentence with no history.
func NewSentence() *Sentence {
	return &Sentence{}
}

// Append adds a token to the sentence and returns true, unless the
// token equals the current last element, in which case nothing changes
// and false is returned. Non-adjacent duplicates are allowed.
func (s *Sentence) Append(token string) bool {
	if token == "" {
		return false
	}
	if n := len(s.words); n > 0 && s.words[n-1] == token {
		return false
	}
	s.words = append(s.words, token)
	return true
}

// RemoveLast pops the last token. No-op on an empty sentence.
func (s *Sentence) RemoveLast() {
	if n := len(s.words); n > 0 {
		s.words = s.words[:n-1]
	}
}

// Clear archives the current sentence to history and empties it,
// returning the archived text. An empty sentence is a no-op and does
// not add an empty history entry.
func (s *Sentence) Clear() string {
	if len(s.words) == 0 {
		return ""
	}
	text := s.Text()
	s.history = append(s.history, text)
	s.words = nil
	return text
}

// Text returns the tokens joined by single spaces.
func (s *Sentence) Text() string {
	return strings.Join(s.words, " ")
}

// Words returns a copy of the current tokens.
func (s *Sentence) Words() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

// Len returns the number of tokens in the current sentence.
func (s *Sentence) Len() int {
	return len(s.words)
}

// History returns a copy of the cleared sentences, oldest first.
func (s *Sentence) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}
