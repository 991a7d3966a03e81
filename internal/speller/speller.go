// Package speller decides whether words are spelled correctly.
package speller

import "errors"

// ErrTerminated is the panic value raised when a terminated speller is
// queried.
var ErrTerminated = errors.New("speller: use after terminate")

// Result is the verdict of a spelling check.
type Result int

const (
	Failed Result = iota
	OK
)

func (r Result) String() string {
	switch r {
	case OK:
		return "OK"
	case Failed:
		return "FAILED"
	}
	return "unknown"
}

// Speller checks single words. Implementations are not safe for concurrent
// use; callers serialize access or hold one speller per goroutine.
type Speller interface {
	// Spell reports whether word is correct. It panics with ErrTerminated
	// after Terminate.
	Spell(word []rune) Result
	// Terminate releases the dictionary. The speller is unusable afterwards.
	Terminate()
}
