package morphology

import (
	"io"
	"sync"
)

// Cached memoizes successful analyses of another analyzer. Errors are not
// cached.
type Cached struct {
	Analyzer
	cache sync.Map // map[string][]Analysis
}

// NewCached wraps a.
func NewCached(a Analyzer) *Cached {
	return &Cached{Analyzer: a}
}

func (c *Cached) Analyze(word []rune) ([]Analysis, error) {
	key := string(word)
	if v, ok := c.cache.Load(key); ok {
		return v.([]Analysis), nil
	}
	res, err := c.Analyzer.Analyze(word)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = []Analysis{}
	}
	c.cache.Store(key, res)
	return res, nil
}

// Fuzzy forwards to the wrapped analyzer when it supports fuzzy search.
func (c *Cached) Fuzzy(word []rune, distance int, fn func(word string) bool) error {
	if fs, ok := c.Analyzer.(FuzzySearcher); ok {
		return fs.Fuzzy(word, distance, fn)
	}
	return nil
}

// Close drops every memoized result and closes the wrapped analyzer when it
// is an io.Closer, so later calls see the wrapped analyzer's closed state.
func (c *Cached) Close() error {
	c.cache.Clear()
	if cl, ok := c.Analyzer.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
