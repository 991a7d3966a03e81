package corrector

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fstspell/internal/dictionary"
	"fstspell/internal/morphology"
	"fstspell/internal/speller"
)

type memStore struct {
	mu    sync.Mutex
	words map[string]bool
	err   error
}

func newMemStore(words ...string) *memStore {
	m := &memStore{words: map[string]bool{}}
	for _, w := range words {
		m.words[w] = true
	}
	return m
}

func (m *memStore) Add(_ context.Context, word string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.words[word] = true
	return nil
}

func (m *memStore) Remove(_ context.Context, word string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.words, word)
	return nil
}

func (m *memStore) All(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []string
	for w := range m.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out, nil
}

func testConfig() CorrectorConfig {
	return CorrectorConfig{
		MaxSuggestions:   5,
		Replacements:     []string{"c"},
		ReplaceCounts:    []int{1},
		EnableSwap:       true,
		FilterShortWords: true,
	}
}

func newTestCorrector(t *testing.T, cfg CorrectorConfig, store WordStore) *SpellCorrector {
	t.Helper()
	dir := t.TempDir()
	var words []dictionary.Word
	for _, w := range []string{"the", "cat", "sat", "on", "mat", "dog"} {
		words = append(words, dictionary.Word{Form: w})
	}
	require.NoError(t, dictionary.Compile(dir, words, dictionary.CompileOptions{}))
	sc, err := NewSpellCorrector(cfg, dir, store)
	require.NoError(t, err)
	return sc
}

func TestSpell(t *testing.T) {
	sc := newTestCorrector(t, testConfig(), nil)
	defer sc.Terminate()

	assert.True(t, sc.Spell("cat"))
	assert.True(t, sc.Spell("Cat"))
	assert.True(t, sc.Spell("CAT"))
	assert.False(t, sc.Spell("kat"))
	assert.False(t, sc.Spell(""))
}

func TestSuggest(t *testing.T) {
	sc := newTestCorrector(t, testConfig(), nil)
	defer sc.Terminate()

	tests := []struct {
		word string
		want []string
	}{
		{"kat", []string{"cat"}},
		{"Kat", []string{"Cat"}},
		{"KAT", []string{"CAT"}},
		{"teh", []string{"the"}},
		{"xyzzy", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, err := sc.Suggest(tt.word)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestMaxSuggestions(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSuggestions = 1
	cfg.Replacements = []string{"c", "s", "m"}
	sc := newTestCorrector(t, cfg, nil)
	defer sc.Terminate()

	got, err := sc.Suggest("bat")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, got)
}

func TestCheckText(t *testing.T) {
	sc := newTestCorrector(t, testConfig(), nil)
	defer sc.Terminate()

	res, err := sc.CheckText("The kat sat on teh mat.")
	require.NoError(t, err)

	assert.Equal(t, "The kat sat on teh mat.", res.Original)
	assert.Equal(t, "The cat sat on the mat.", res.Corrected)
	assert.Equal(t, map[int]SuggestionInfo{
		2: {Token: "kat", Suggestions: []string{"cat"}, Decision: DecisionAutoReplace},
		8: {Token: "teh", Suggestions: []string{"the"}, Decision: DecisionAutoReplace},
	}, res.Suggestions)

	res, err = sc.CheckText("zz qqqq")
	require.NoError(t, err)
	assert.Equal(t, "zz qqqq", res.Corrected)
	assert.Equal(t, map[int]SuggestionInfo{
		2: {Token: "qqqq", Decision: DecisionHintOnly},
	}, res.Suggestions)
}

func TestCustomWords(t *testing.T) {
	store := newMemStore("kat")
	sc := newTestCorrector(t, testConfig(), store)
	defer sc.Terminate()

	assert.True(t, sc.Spell("kat"), "preloaded from the store")
	assert.True(t, sc.Spell("Kat"))

	ctx := context.Background()
	require.NoError(t, sc.AddCustomWord(ctx, "Zorg"))
	assert.True(t, sc.Spell("zorg"))
	assert.True(t, store.words["zorg"])

	got, err := sc.Suggest("zrog")
	require.NoError(t, err)
	assert.Equal(t, []string{"zorg"}, got, "custom words are valid suggestions")

	require.NoError(t, sc.RemoveCustomWord(ctx, "zorg"))
	assert.False(t, sc.Spell("zorg"))
	assert.False(t, store.words["zorg"])

	store.err = errors.New("connection refused")
	assert.Error(t, sc.AddCustomWord(ctx, "blorp"))
	assert.False(t, sc.Spell("blorp"))
}

func TestStoreUnavailable(t *testing.T) {
	store := newMemStore("kat")
	store.err = errors.New("connection refused")
	sc := newTestCorrector(t, testConfig(), store)
	defer sc.Terminate()

	assert.False(t, sc.Spell("kat"))
	assert.True(t, sc.Spell("cat"))
}

func TestTerminate(t *testing.T) {
	sc := newTestCorrector(t, testConfig(), newMemStore("zyx"))

	got, err := sc.Suggest("kat")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, got)
	assert.True(t, sc.Spell("zyx"))

	sc.Terminate()
	sc.Terminate()

	assert.PanicsWithValue(t, speller.ErrTerminated, func() { sc.Spell("cat") })
	assert.PanicsWithValue(t, speller.ErrTerminated, func() { sc.Spell("zyx") }, "custom words are not answered after Terminate")

	got, err = sc.Suggest("kat")
	assert.ErrorIs(t, err, morphology.ErrClosed, "cached analyses are not served after Terminate")
	assert.Nil(t, got)

	_, err = sc.CheckText("The kat sat.")
	assert.ErrorIs(t, err, morphology.ErrClosed)
}

func TestNewSpellCorrectorMissingDictionary(t *testing.T) {
	sc, err := NewSpellCorrector(testConfig(), filepath.Join(t.TempDir(), "none"), nil)
	assert.Nil(t, sc)
	var le *dictionary.LoadError
	assert.ErrorAs(t, err, &le)
}

func TestConcurrentUse(t *testing.T) {
	sc := newTestCorrector(t, testConfig(), nil)
	defer sc.Terminate()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.True(t, sc.Spell("cat"))
				assert.False(t, sc.Spell("kat"))
				got, err := sc.Suggest("kat")
				assert.NoError(t, err)
				assert.Equal(t, []string{"cat"}, got)
			}
		}()
	}
	wg.Wait()
}

func TestDefaultConfigChain(t *testing.T) {
	sc := newTestCorrector(t, DefaultConfig(), nil)
	defer sc.Terminate()

	got, err := sc.Suggest("dgo")
	require.NoError(t, err)
	assert.Contains(t, got, "dog")
}

func TestHyphenCompoundsOverride(t *testing.T) {
	sc := newTestCorrector(t, testConfig(), nil)
	assert.False(t, sc.Spell("cat-dog"))
	sc.Terminate()

	cfg := testConfig()
	on := true
	cfg.HyphenCompounds = &on
	sc = newTestCorrector(t, cfg, nil)
	defer sc.Terminate()
	assert.True(t, sc.Spell("cat-dog"))
	assert.False(t, sc.Spell("cat-"))
}
