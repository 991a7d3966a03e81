package suggestion

import (
	"fmt"

	"fstspell/internal/morphology"
)

const maxFuzzyCandidates = 100

// Levenshtein proposes dictionary words within Distance edits of the word,
// in dictionary order. It needs an analyzer that implements
// morphology.FuzzySearcher and generates nothing otherwise.
type Levenshtein struct {
	Distance int
	Analyzer morphology.Analyzer
}

func (g Levenshtein) Generate(s *Status) error {
	fs, ok := g.Analyzer.(morphology.FuzzySearcher)
	if !ok || g.Distance <= 0 {
		return nil
	}
	// Collect first: validating inside the search callback would re-enter
	// the analyzer while it holds its lock.
	var found []string
	err := fs.Fuzzy(s.Word(), g.Distance, func(w string) bool {
		found = append(found, w)
		return len(found) < maxFuzzyCandidates
	})
	if err != nil {
		return fmt.Errorf("levenshtein: %w", err)
	}
	for _, w := range found {
		if s.ShouldAbort() {
			return nil
		}
		if err := suggestFor(s, g.Analyzer, []rune(w)); err != nil {
			return fmt.Errorf("levenshtein: %w", err)
		}
	}
	return nil
}
