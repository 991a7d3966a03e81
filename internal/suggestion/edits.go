package suggestion

import (
	"fmt"
	"slices"

	"fstspell/internal/morphology"
)

// Deletion removes one character, left to right. Runs of equal characters
// produce one candidate.
type Deletion struct {
	Analyzer morphology.Analyzer
}

func (g Deletion) Generate(s *Status) error {
	word := s.Word()
	buf := make([]rune, 0, len(word))
	for i := range word {
		if s.ShouldAbort() {
			return nil
		}
		if i > 0 && word[i] == word[i-1] {
			continue
		}
		buf = append(append(buf[:0], word[:i]...), word[i+1:]...)
		if err := suggestFor(s, g.Analyzer, buf); err != nil {
			return fmt.Errorf("deletion: %w", err)
		}
	}
	return nil
}

// Insertion inserts each alphabet character at each position, positions
// left to right. Inserting a character next to an equal one is skipped
// after its first occurrence.
type Insertion struct {
	Alphabet []rune
	Analyzer morphology.Analyzer
}

func (g Insertion) Generate(s *Status) error {
	word := s.Word()
	buf := make([]rune, 0, len(word)+1)
	for pos := 0; pos <= len(word); pos++ {
		for _, c := range g.Alphabet {
			if s.ShouldAbort() {
				return nil
			}
			if pos > 0 && word[pos-1] == c {
				continue
			}
			buf = append(buf[:0], word[:pos]...)
			buf = append(buf, c)
			buf = append(buf, word[pos:]...)
			if err := suggestFor(s, g.Analyzer, buf); err != nil {
				return fmt.Errorf("insertion: %w", err)
			}
		}
	}
	return nil
}

// Swap transposes adjacent characters, left to right.
type Swap struct {
	Analyzer morphology.Analyzer
}

func (g Swap) Generate(s *Status) error {
	word := s.Word()
	buf := slices.Clone(word)
	for i := 0; i+1 < len(word); i++ {
		if s.ShouldAbort() {
			return nil
		}
		if word[i] == word[i+1] {
			continue
		}
		buf[i], buf[i+1] = buf[i+1], buf[i]
		err := suggestFor(s, g.Analyzer, buf)
		buf[i], buf[i+1] = buf[i+1], buf[i]
		if err != nil {
			return fmt.Errorf("swap: %w", err)
		}
	}
	return nil
}

// Replacement substitutes one character at a time using a per-character
// table, for example keyboard neighbours. Positions go left to right and the
// table entries keep their order.
type Replacement struct {
	Table    map[rune][]rune
	Analyzer morphology.Analyzer
}

func (g Replacement) Generate(s *Status) error {
	word := s.Word()
	buf := slices.Clone(word)
	for i, orig := range word {
		for _, r := range g.Table[orig] {
			if s.ShouldAbort() {
				return nil
			}
			buf[i] = r
			err := suggestFor(s, g.Analyzer, buf)
			buf[i] = orig
			if err != nil {
				return fmt.Errorf("replacement: %w", err)
			}
		}
	}
	return nil
}
