package morphology

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fstspell/internal/dictionary"
)

func loadTestAnalyzer(t *testing.T) *FSTAnalyzer {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, dictionary.Compile(dir, []dictionary.Word{
		{Form: "cat", Class: "noun"},
		{Form: "cut", Class: "verb"},
		{Form: "cart", Class: "noun"},
		{Form: "dog"},
	}, dictionary.CompileOptions{}))
	a, err := LoadFSTAnalyzer(dir)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestFSTAnalyzer(t *testing.T) {
	a := loadTestAnalyzer(t)

	res, err := a.Analyze([]rune("cut"))
	require.NoError(t, err)
	assert.Equal(t, []Analysis{{Word: "cut", Class: "verb"}}, res)

	res, err = a.Analyze([]rune("dog"))
	require.NoError(t, err)
	assert.Equal(t, []Analysis{{Word: "dog", Class: dictionary.DefaultClass}}, res)

	res, err = a.Analyze([]rune("kat"))
	require.NoError(t, err)
	assert.Empty(t, res)

	ok, err := Valid(a, []rune("cart"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFSTAnalyzerFuzzy(t *testing.T) {
	a := loadTestAnalyzer(t)

	var got []string
	err := a.Fuzzy([]rune("kat"), 1, func(w string) bool {
		got = append(got, w)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, got)

	assert.Error(t, a.Fuzzy([]rune("kat"), -1, func(string) bool { return true }))
}

func TestFSTAnalyzerClosed(t *testing.T) {
	a := loadTestAnalyzer(t)
	require.NoError(t, a.Close())
	require.NoError(t, a.Close())

	_, err := a.Analyze([]rune("cat"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, a.Fuzzy([]rune("cat"), 1, func(string) bool { return true }), ErrClosed)
}

func TestCached(t *testing.T) {
	calls := 0
	fail := false
	inner := Func(func(word []rune) ([]Analysis, error) {
		calls++
		if fail {
			return nil, errors.New("boom")
		}
		if string(word) == "cat" {
			return []Analysis{{Word: "cat"}}, nil
		}
		return nil, nil
	})
	c := NewCached(inner)

	for i := 0; i < 3; i++ {
		ok, err := Valid(c, []rune("cat"))
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = Valid(c, []rune("kat"))
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, 2, calls)

	fail = true
	_, err := c.Analyze([]rune("dog"))
	assert.Error(t, err)
	_, err = c.Analyze([]rune("dog"))
	assert.Error(t, err)
	assert.Equal(t, 4, calls, "errors are not cached")

	called := false
	require.NoError(t, c.Fuzzy([]rune("cat"), 1, func(string) bool { called = true; return true }))
	assert.False(t, called)
}

func TestCachedClose(t *testing.T) {
	a := loadTestAnalyzer(t)
	c := NewCached(a)

	ok, err := Valid(c, []rune("cat"))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Close())
	_, err = c.Analyze([]rune("cat"))
	assert.ErrorIs(t, err, ErrClosed, "memoized results are dropped on Close")

	plain := NewCached(Func(func([]rune) ([]Analysis, error) { return nil, nil }))
	assert.NoError(t, plain.Close())
}
