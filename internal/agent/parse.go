package agent

import (
	"errors"
	"strings"
)

// MaxCandidates is the most commit message options kept from one response
const MaxCandidates = 3

// ErrEmptyGeneration is returned when a response holds no usable line
var ErrEmptyGeneration = errors.New("model returned no commit message")

// ParseCandidates splits raw model output into at most MaxCandidates
// messages. Lines are trimmed and blank lines dropped; order is kept and
// duplicates are not removed.
func ParseCandidates(raw string) ([]string, error) {
	candidates := make([]string, 0, MaxCandidates)
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		candidates = append(candidates, line)
		if len(candidates) == MaxCandidates {
			break
		}
	}

	if len(candidates) == 0 {
		return nil, ErrEmptyGeneration
	}
	return candidates, nil
}
