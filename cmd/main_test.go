package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "fstspell/internal/corrector"
	"fstspell/internal/dictionary"
)

func newCorrector(t *testing.T) *sc.SpellCorrector {
	t.Helper()
	dir := t.TempDir()
	words, err := dictionary.ReadWords(strings.NewReader("cat\nsat\nmat\n"))
	require.NoError(t, err)
	require.NoError(t, dictionary.Compile(dir, words, dictionary.CompileOptions{}))

	cfg := sc.CorrectorConfig{MaxSuggestions: 5, Replacements: []string{"c", "m"}, ReplaceCounts: []int{1}}
	c, err := sc.NewSpellCorrector(cfg, dir, nil)
	require.NoError(t, err)
	t.Cleanup(c.Terminate)
	return c
}

func TestRun(t *testing.T) {
	c := newCorrector(t)

	var out bytes.Buffer
	require.NoError(t, run(strings.NewReader("cat\n\n  kat \nzzz\n"), &out, c, true))
	assert.Equal(t, "C: cat\nW: kat\nS: cat, mat\nW: zzz\n", out.String())

	out.Reset()
	require.NoError(t, run(strings.NewReader("Cat\nkat\n"), &out, c, false))
	assert.Equal(t, "C: Cat\nW: kat\n", out.String())
}
