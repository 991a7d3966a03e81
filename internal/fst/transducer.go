package fst

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/blevesearch/vellum"
	"github.com/blevesearch/vellum/levenshtein"
	mmap "github.com/edsrzf/mmap-go"
)

var ErrEmpty = errors.New("transducer file is empty")

// Transducer is an immutable compiled acceptor. Symbols are bytes; a word is
// fed as its UTF-8 encoding. Values attached to keys are opaque to the
// walker and used by callers that need per-word data.
type Transducer struct {
	fst  *vellum.FST
	data []byte
	m    mmap.MMap
	file *os.File

	levMu sync.Mutex
	lev   map[uint8]*levenshtein.LevenshteinAutomatonBuilder
}

// Open maps the file at path read-only and decodes it.
func Open(path string) (*Transducer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.Size() == 0 {
		f.Close()
		return nil, ErrEmpty
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	t, err := load(m)
	if err != nil {
		m.Unmap()
		f.Close()
		return nil, err
	}
	t.m = m
	t.file = f
	return t, nil
}

// Load decodes a transducer held in memory. The slice must not be modified
// while the transducer is in use.
func Load(data []byte) (*Transducer, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return load(data)
}

func load(data []byte) (t *Transducer, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, err = nil, fmt.Errorf("decode transducer: %v", r)
		}
	}()
	f, err := vellum.Load(data)
	if err != nil {
		return nil, fmt.Errorf("decode transducer: %w", err)
	}
	return &Transducer{fst: f, data: data}, nil
}

// Bytes returns the raw encoded automaton.
func (t *Transducer) Bytes() []byte { return t.data }

// Len returns the number of keys accepted by the transducer.
func (t *Transducer) Len() int { return t.fst.Len() }

// Start returns the initial state.
func (t *Transducer) Start() int { return t.fst.Start() }

// Step follows the transition labelled b. ok is false when the state has no
// such transition.
func (t *Transducer) Step(state int, b byte) (next int, ok bool) {
	next = t.fst.Accept(state, b)
	return next, t.fst.CanMatch(next)
}

// Final reports whether state is an accepting state.
func (t *Transducer) Final(state int) bool { return t.fst.IsMatch(state) }

// Accepts walks symbols from the initial state. A missing transition
// rejects; the walk accepts only if it ends in a final state having
// consumed every symbol.
func (t *Transducer) Accepts(symbols []byte) bool {
	state := t.Start()
	for _, b := range symbols {
		var ok bool
		if state, ok = t.Step(state, b); !ok {
			return false
		}
	}
	return t.Final(state)
}

// Value returns the value stored with key.
func (t *Transducer) Value(key []byte) (uint64, bool, error) {
	return t.fst.Get(key)
}

// Fuzzy calls fn for each key within distance edits of query, in key order.
// Returning false from fn stops the iteration.
func (t *Transducer) Fuzzy(query string, distance uint8, fn func(key []byte, val uint64) bool) error {
	dfa, err := t.levenshtein(query, distance)
	if err != nil {
		return err
	}
	it, err := t.fst.Search(dfa, nil, nil)
	for err == nil {
		key, val := it.Current()
		if !fn(key, val) {
			return nil
		}
		err = it.Next()
	}
	if errors.Is(err, vellum.ErrIteratorDone) {
		return nil
	}
	return err
}

func (t *Transducer) levenshtein(query string, distance uint8) (*levenshtein.DFA, error) {
	t.levMu.Lock()
	defer t.levMu.Unlock()
	if t.lev == nil {
		t.lev = make(map[uint8]*levenshtein.LevenshteinAutomatonBuilder)
	}
	b, ok := t.lev[distance]
	if !ok {
		var err error
		b, err = levenshtein.NewLevenshteinAutomatonBuilder(distance, true)
		if err != nil {
			return nil, err
		}
		t.lev[distance] = b
	}
	return b.BuildDfa(query, distance)
}

// Close releases the automaton and its mapping. Close is idempotent.
func (t *Transducer) Close() error {
	if t.fst == nil {
		return nil
	}
	err := t.fst.Close()
	t.fst = nil
	if t.m != nil {
		if uerr := t.m.Unmap(); err == nil {
			err = uerr
		}
		t.m = nil
	}
	if t.file != nil {
		if cerr := t.file.Close(); err == nil {
			err = cerr
		}
		t.file = nil
	}
	t.data = nil
	return err
}

// Closed reports whether Close has been called.
func (t *Transducer) Closed() bool { return t.fst == nil }
