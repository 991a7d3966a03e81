package fst

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/blevesearch/vellum"
)

// Entry is one key of a transducer under construction.
type Entry struct {
	Key   string
	Value uint64
}

// Stats describes a compiled transducer.
type Stats struct {
	Keys        int
	MaxKeyBytes int
}

// Compile writes a transducer accepting every entry key to w. Entries may be
// given in any order; for a key given more than once the first value wins.
// Empty keys are skipped.
func Compile(w io.Writer, entries []Entry) (Stats, error) {
	sorted := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Key != "" {
			sorted = append(sorted, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	b, err := vellum.New(w, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("new builder: %w", err)
	}
	var st Stats
	prev := ""
	for i, e := range sorted {
		if i > 0 && e.Key == prev {
			continue
		}
		if err := b.Insert([]byte(e.Key), e.Value); err != nil {
			return Stats{}, fmt.Errorf("insert %q: %w", e.Key, err)
		}
		prev = e.Key
		st.Keys++
		if len(e.Key) > st.MaxKeyBytes {
			st.MaxKeyBytes = len(e.Key)
		}
	}
	if err := b.Close(); err != nil {
		return Stats{}, fmt.Errorf("close builder: %w", err)
	}
	return st, nil
}

// Build compiles entries into an in-memory transducer.
func Build(entries []Entry) (*Transducer, Stats, error) {
	var buf bytes.Buffer
	st, err := Compile(&buf, entries)
	if err != nil {
		return nil, Stats{}, err
	}
	t, err := Load(buf.Bytes())
	if err != nil {
		return nil, Stats{}, err
	}
	return t, st, nil
}

// Words is a convenience for building entries with zero values.
func Words(words ...string) []Entry {
	out := make([]Entry, len(words))
	for i, w := range words {
		out[i] = Entry{Key: w}
	}
	return out
}
