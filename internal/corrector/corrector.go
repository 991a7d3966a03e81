package corrector

import (
	"context"
	"log"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"fstspell/internal/morphology"
	"fstspell/internal/speller"
	"fstspell/internal/suggestion"
	"fstspell/pkg/options"
)

// WordStore persists custom words. customdict.CustomDict implements it.
type WordStore interface {
	Add(ctx context.Context, word string) error
	Remove(ctx context.Context, word string) error
	All(ctx context.Context) ([]string, error)
}

// SpellCorrector checks words and text against one dictionary directory.
// It is safe for concurrent use.
type SpellCorrector struct {
	config    CorrectorConfig
	mu         sync.Mutex // serializes the speller
	speller    speller.Speller
	analyzer   *morphology.Cached
	generator  suggestion.Chain
	terminated atomic.Bool

	customMu    sync.RWMutex
	customWords map[string]bool
	dict        WordStore
}

// =====================
// Initialization
// =====================

func NewSpellCorrector(cfg CorrectorConfig, dictionaryPath string, dict WordStore) (*SpellCorrector, error) {
	opts := []options.Options{
		options.WithBufferSize(cfg.BufferSize),
		options.WithVariants(cfg.Variants...),
	}
	if cfg.HyphenCompounds != nil {
		opts = append(opts, options.WithHyphenCompounds(*cfg.HyphenCompounds))
	}
	sp, err := speller.NewVfstSpeller(dictionaryPath, opts...)
	if err != nil {
		return nil, err
	}
	an, err := morphology.LoadFSTAnalyzer(dictionaryPath)
	if err != nil {
		sp.Terminate()
		return nil, err
	}
	sc := &SpellCorrector{
		config:      cfg,
		speller:     sp,
		analyzer:    morphology.NewCached(an),
		customWords: make(map[string]bool),
		dict:        dict,
	}
	sc.generator = buildChain(cfg, &oracle{Cached: sc.analyzer, sc: sc})
	sc.loadCustomWords(context.Background())
	return sc, nil
}

func buildChain(cfg CorrectorConfig, a morphology.Analyzer) suggestion.Chain {
	var chain suggestion.Chain
	if len(cfg.KeyboardRows) > 0 && cfg.KeyboardDistance > 0 {
		chain = append(chain, suggestion.Replacement{
			Table:    suggestion.KeyboardNeighbours(cfg.KeyboardRows, cfg.KeyboardDistance),
			Analyzer: a,
		})
	}
	if cfg.EnableSwap {
		chain = append(chain, suggestion.Swap{Analyzer: a})
	}
	if cfg.EnableDeletion {
		chain = append(chain, suggestion.Deletion{Analyzer: a})
	}
	if cfg.InsertionAlphabet != "" {
		chain = append(chain, suggestion.Insertion{Alphabet: []rune(cfg.InsertionAlphabet), Analyzer: a})
	}
	for _, n := range cfg.ReplaceCounts {
		chain = append(chain, suggestion.NewMultiReplacement(cfg.Replacements, n, a))
	}
	if cfg.LevenshteinDist > 0 {
		chain = append(chain, suggestion.Levenshtein{Distance: cfg.LevenshteinDist, Analyzer: a})
	}
	return chain
}

// oracle accepts custom words in addition to the analyzer's.
type oracle struct {
	*morphology.Cached
	sc *SpellCorrector
}

func (o *oracle) Analyze(word []rune) ([]morphology.Analysis, error) {
	if o.sc.isCustom(string(word)) {
		return []morphology.Analysis{{Word: string(word), Class: "custom"}}, nil
	}
	return o.Cached.Analyze(word)
}

func (sc *SpellCorrector) loadCustomWords(ctx context.Context) {
	if sc.dict == nil {
		return
	}
	words, err := sc.dict.All(ctx)
	if err != nil {
		log.Printf("warning: failed to load custom words: %v", err)
		return
	}
	sc.customMu.Lock()
	defer sc.customMu.Unlock()
	for _, w := range words {
		sc.customWords[strings.ToLower(w)] = true
	}
}

func (sc *SpellCorrector) isCustom(word string) bool {
	sc.customMu.RLock()
	defer sc.customMu.RUnlock()
	return sc.customWords[strings.ToLower(word)]
}

// =====================
// Words
// =====================

// Spell reports whether word is spelled correctly. It panics with
// speller.ErrTerminated after Terminate.
func (sc *SpellCorrector) Spell(word string) bool {
	if sc.terminated.Load() {
		panic(speller.ErrTerminated)
	}
	if word != "" && sc.isCustom(word) {
		return true
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.speller.Spell([]rune(word)) == speller.OK
}

// Suggest returns corrections for word in generator order. Title-case and
// upper-case words are corrected in lower case and the results re-cased.
func (sc *SpellCorrector) Suggest(word string) ([]string, error) {
	if sc.terminated.Load() {
		return nil, morphology.ErrClosed
	}
	if word == "" {
		return nil, nil
	}
	lookup, recase := word, func(s string) string { return s }
	switch {
	case len([]rune(word)) > 1 && isUpper(word) && strings.ToLower(word) != word:
		lookup, recase = strings.ToLower(word), strings.ToUpper
	case isTitle(word) && strings.ToLower(word) != word:
		lookup, recase = strings.ToLower(word), title
	}

	s := suggestion.NewStatus([]rune(lookup), sc.config.MaxSuggestions)
	s.SetMaxCost(sc.config.MaxCost)
	if err := sc.generator.Generate(s); err != nil {
		return nil, err
	}

	var out []string
	seen := map[string]bool{word: true}
	for _, c := range s.Suggestions() {
		c = recase(c)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, nil
}

// =====================
// Text
// =====================

var tokenRe = regexp.MustCompile(`\p{L}+(?:['\-]\p{L}+)*|\d+|\s+|[^\s\p{L}\d]`)

func tokenize(text string) []string { return tokenRe.FindAllString(text, -1) }

var wordRe = regexp.MustCompile(`^\p{L}+(?:['\-]\p{L}+)*$`)

func isWord(tok string) bool { return wordRe.MatchString(tok) }

// CheckText spells every word of text. Misspelled words get suggestions; a
// word whose best suggestion is the only one a single edit away is replaced
// in the corrected text.
func (sc *SpellCorrector) CheckText(text string) (CorrectionResult, error) {
	if sc.terminated.Load() {
		return CorrectionResult{}, morphology.ErrClosed
	}
	tokens := tokenize(text)
	out := make([]string, len(tokens))
	copy(out, tokens)
	sugByPos := make(map[int]SuggestionInfo)

	for idx, x := range tokens {
		if !isWord(x) {
			continue
		}
		if sc.config.FilterShortWords && len([]rune(x)) <= 2 {
			continue
		}
		if sc.Spell(x) {
			continue
		}
		list, err := sc.Suggest(x)
		if err != nil {
			return CorrectionResult{}, err
		}
		decision := DecisionHintOnly
		if autoReplace(x, list) {
			decision = DecisionAutoReplace
			out[idx] = list[0]
		}
		sugByPos[idx] = SuggestionInfo{Token: x, Suggestions: list, Decision: decision}
	}

	return CorrectionResult{
		Original:    text,
		Corrected:   strings.Join(out, ""),
		Suggestions: sugByPos,
	}, nil
}

func autoReplace(token string, list []string) bool {
	if len(list) == 0 {
		return false
	}
	lx := strings.ToLower(token)
	if unitDL(lx, strings.ToLower(list[0])) != 1 {
		return false
	}
	for _, c := range list[1:] {
		if unitDL(lx, strings.ToLower(c)) == 1 {
			return false
		}
	}
	return true
}

// =====================
// Custom words
// =====================

// AddCustomWord adds a custom word to the dictionary and the store.
func (sc *SpellCorrector) AddCustomWord(ctx context.Context, word string) error {
	lw := strings.ToLower(word)
	if sc.dict != nil {
		if err := sc.dict.Add(ctx, lw); err != nil {
			return err
		}
	}
	sc.customMu.Lock()
	sc.customWords[lw] = true
	sc.customMu.Unlock()
	return nil
}

// RemoveCustomWord removes a custom word from the dictionary and the store.
func (sc *SpellCorrector) RemoveCustomWord(ctx context.Context, word string) error {
	lw := strings.ToLower(word)
	if sc.dict != nil {
		if err := sc.dict.Remove(ctx, lw); err != nil {
			return err
		}
	}
	sc.customMu.Lock()
	delete(sc.customWords, lw)
	sc.customMu.Unlock()
	return nil
}

// Terminate releases the dictionary. Afterwards Spell panics with
// speller.ErrTerminated and Suggest and CheckText fail with
// morphology.ErrClosed. Terminate is idempotent.
func (sc *SpellCorrector) Terminate() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.terminated.Swap(true) {
		return
	}
	sc.speller.Terminate()
	if err := sc.analyzer.Close(); err != nil {
		log.Printf("warning: failed to close analyzer: %v", err)
	}
}
