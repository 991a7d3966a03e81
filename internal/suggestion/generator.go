// Package suggestion proposes corrections for rejected words. Every
// generator produces candidate strings in a fixed order and keeps those the
// morphological analyzer recognizes.
package suggestion

import (
	"fmt"

	"fstspell/internal/morphology"
)

// Generator adds suggestions for the word held by a Status. Generators hold
// no per-call state and may be shared; each call needs its own Status.
type Generator interface {
	Generate(s *Status) error
}

// Chain runs generators in order against one status, stopping early once
// the status asks to abort.
type Chain []Generator

func (c Chain) Generate(s *Status) error {
	for _, g := range c {
		if s.ShouldAbort() {
			return nil
		}
		if err := g.Generate(s); err != nil {
			return err
		}
	}
	return nil
}

// suggestFor validates candidate and adds it to s when the analyzer
// recognizes it.
func suggestFor(s *Status, a morphology.Analyzer, candidate []rune) error {
	s.Charge()
	ok, err := morphology.Valid(a, candidate)
	if err != nil {
		return fmt.Errorf("analyze %q: %w", string(candidate), err)
	}
	if ok {
		s.Add(candidate)
	}
	return nil
}
