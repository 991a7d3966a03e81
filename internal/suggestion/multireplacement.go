package suggestion

import (
	"fmt"
	"slices"

	"fstspell/internal/morphology"
)

// MultiReplacement substitutes replaceCount distinct positions of the word
// at once. Positions are chosen left to right and every position takes each
// replacement in the given order, so a word of n runes yields
// C(n, replaceCount) * len(replacements)^replaceCount candidates.
type MultiReplacement struct {
	replacements []string
	replaceCount int
	analyzer     morphology.Analyzer
}

// NewMultiReplacement returns a generator substituting replaceCount
// positions with the given replacements. A count of zero or less, or an
// empty replacement set, generates nothing. A count equal to the word
// length replaces every position; only a longer count generates nothing.
func NewMultiReplacement(replacements []string, replaceCount int, analyzer morphology.Analyzer) *MultiReplacement {
	return &MultiReplacement{
		replacements: slices.Clone(replacements),
		replaceCount: replaceCount,
		analyzer:     analyzer,
	}
}

func (g *MultiReplacement) Generate(s *Status) error {
	n := s.WordLen()
	if g.replaceCount <= 0 || len(g.replacements) == 0 || g.replaceCount > n {
		return nil
	}
	word := s.Word()
	wordBuffer := make([]string, n)
	for i, r := range word {
		wordBuffer[i] = string(r)
	}
	buffer := make([]rune, 0, n+g.replaceCount*g.longestReplacement())
	if err := g.doGenerate(s, wordBuffer, buffer, 0, g.replaceCount); err != nil {
		return fmt.Errorf("multi-replacement: %w", err)
	}
	return nil
}

// doGenerate picks the next position at or after start. wordBuffer holds
// one segment per original position and is restored before returning;
// buffer receives the assembled candidate.
func (g *MultiReplacement) doGenerate(s *Status, wordBuffer []string, buffer []rune, start, remainingReplacements int) error {
	for pos := start; pos <= len(wordBuffer)-remainingReplacements; pos++ {
		orig := wordBuffer[pos]
		for _, r := range g.replacements {
			if s.ShouldAbort() {
				wordBuffer[pos] = orig
				return nil
			}
			wordBuffer[pos] = r
			var err error
			if remainingReplacements == 1 {
				buffer = buffer[:0]
				for _, seg := range wordBuffer {
					buffer = append(buffer, []rune(seg)...)
				}
				err = suggestFor(s, g.analyzer, buffer)
			} else {
				err = g.doGenerate(s, wordBuffer, buffer, pos+1, remainingReplacements-1)
			}
			if err != nil {
				wordBuffer[pos] = orig
				return err
			}
		}
		wordBuffer[pos] = orig
	}
	return nil
}

func (g *MultiReplacement) longestReplacement() int {
	n := 0
	for _, r := range g.replacements {
		n = max(n, len([]rune(r)))
	}
	return n
}
