// Package morphology validates word forms. Suggestion generators use an
// Analyzer as a yes/no oracle: a word with at least one analysis is valid.
package morphology

import (
	"errors"
	"fmt"
	"sync"

	"fstspell/internal/dictionary"
)

// Analysis is one reading of a word form.
type Analysis struct {
	Word  string
	Class string
}

// Analyzer returns the analyses of word. An empty result means the word is
// not recognized; an error means the analyzer itself failed.
type Analyzer interface {
	Analyze(word []rune) ([]Analysis, error)
}

// FuzzySearcher is implemented by analyzers that can enumerate their own
// words near a query.
type FuzzySearcher interface {
	Fuzzy(word []rune, distance int, fn func(word string) bool) error
}

// Valid reports whether a recognizes word.
func Valid(a Analyzer, word []rune) (bool, error) {
	res, err := a.Analyze(word)
	if err != nil {
		return false, err
	}
	return len(res) > 0, nil
}

// FSTAnalyzer looks words up in the analyzer transducer of a dictionary
// directory. The value stored with each word selects its class.
type FSTAnalyzer struct {
	mu   sync.RWMutex
	dict *dictionary.Dictionary
}

var (
	_ Analyzer      = (*FSTAnalyzer)(nil)
	_ FuzzySearcher = (*FSTAnalyzer)(nil)
)

// LoadFSTAnalyzer opens the analyzer artifacts in dir.
func LoadFSTAnalyzer(dir string) (*FSTAnalyzer, error) {
	d, err := dictionary.Load(dir, dictionary.Analyzer)
	if err != nil {
		return nil, err
	}
	return &FSTAnalyzer{dict: d}, nil
}

// ErrClosed is returned by a closed analyzer.
var ErrClosed = errors.New("morphology: analyzer closed")

func (a *FSTAnalyzer) Analyze(word []rune) ([]Analysis, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.dict == nil {
		return nil, ErrClosed
	}
	key := string(word)
	v, ok, err := a.dict.Transducer.Value([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("analyze %q: %w", key, err)
	}
	if !ok {
		return nil, nil
	}
	return []Analysis{{Word: key, Class: a.dict.Config.Class(v)}}, nil
}

func (a *FSTAnalyzer) Fuzzy(word []rune, distance int, fn func(word string) bool) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.dict == nil {
		return ErrClosed
	}
	if distance < 0 || distance > 255 {
		return fmt.Errorf("morphology: edit distance %d out of range", distance)
	}
	return a.dict.Transducer.Fuzzy(string(word), uint8(distance), func(key []byte, _ uint64) bool {
		return fn(string(key))
	})
}

// Close releases the transducer. Later calls fail with ErrClosed.
func (a *FSTAnalyzer) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.dict == nil {
		return nil
	}
	err := a.dict.Close()
	a.dict = nil
	return err
}

// Func adapts a function to the Analyzer interface.
type Func func(word []rune) ([]Analysis, error)

func (f Func) Analyze(word []rune) ([]Analysis, error) { return f(word) }
