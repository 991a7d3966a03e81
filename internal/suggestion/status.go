package suggestion

import "slices"

// Status collects the suggestions for one word. It is owned by the caller
// of Generate and is not safe for concurrent use.
type Status struct {
	word           []rune
	original       string
	maxSuggestions int
	maxCost        int
	cost           int
	suggestions    []string
	seen           map[string]struct{}
}

// NewStatus returns an empty status for word. maxSuggestions <= 0 means no
// limit.
func NewStatus(word []rune, maxSuggestions int) *Status {
	return &Status{
		word:           slices.Clone(word),
		original:       string(word),
		maxSuggestions: maxSuggestions,
		seen:           make(map[string]struct{}),
	}
}

// SetMaxCost limits the number of candidate validations. cost <= 0 means no
// limit.
func (s *Status) SetMaxCost(cost int) { s.maxCost = cost }

// Word returns a copy of the word being corrected.
func (s *Status) Word() []rune { return slices.Clone(s.word) }

// WordLen returns the length of the word in runes.
func (s *Status) WordLen() int { return len(s.word) }

// Add appends candidate unless it equals the original word, was already
// added, or the status is full. It reports whether candidate was added.
func (s *Status) Add(candidate []rune) bool {
	if s.full() {
		return false
	}
	c := string(candidate)
	if c == s.original {
		return false
	}
	if _, ok := s.seen[c]; ok {
		return false
	}
	s.seen[c] = struct{}{}
	s.suggestions = append(s.suggestions, c)
	return true
}

// Charge records one candidate validation.
func (s *Status) Charge() { s.cost++ }

// Cost returns the number of validations charged so far.
func (s *Status) Cost() int { return s.cost }

// ShouldAbort reports whether generators should stop searching.
func (s *Status) ShouldAbort() bool {
	return s.full() || (s.maxCost > 0 && s.cost >= s.maxCost)
}

func (s *Status) full() bool {
	return s.maxSuggestions > 0 && len(s.suggestions) >= s.maxSuggestions
}

// Suggestions returns the accepted candidates in emission order.
func (s *Status) Suggestions() []string { return slices.Clone(s.suggestions) }

// Len returns the number of accepted candidates.
func (s *Status) Len() int { return len(s.suggestions) }
