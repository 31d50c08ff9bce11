package sign

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Dictionary maps sign ids to display text. It is loaded once at
// startup and never mutated afterwards.
type Dictionary map[int]string

// Lookup returns the display text for a sign id.
func (d Dictionary) Lookup(id int) (string, bool) {
	if d == nil {
		return "", false
	}
	text, ok := d[id]
	return text, ok
}

// LoadDictionary reads a JSON sign dictionary of the form
// {"0": "Hello", "10": "Stop"}. A missing file is not an error: the
// classifier falls back to intrinsic rule names, so an empty dictionary
// is returned instead.
func LoadDictionary(path string) (Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Dictionary{}, nil
		}
		return nil, fmt.Errorf("read sign dictionary: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse sign dictionary: %w", err)
	}

	dict := make(Dictionary, len(raw))
	for key, text := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("sign dictionary key %q is not an integer id", key)
		}
		dict[id] = text
	}

	return dict, nil
}
