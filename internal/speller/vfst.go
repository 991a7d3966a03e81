package speller

import (
	"fmt"
	"log"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"fstspell/internal/dictionary"
	"fstspell/pkg/options"
)

// VfstSpeller accepts words found in a compiled transducer. Each word is
// tried in the normalized forms listed by the dictionary configuration and
// the first form that walks to a final state wins.
type VfstSpeller struct {
	dict         *dictionary.Dictionary
	automaton    automaton
	variants     []dictionary.Variant
	compounds    bool
	lower        cases.Caser
	outputBuffer *outputBuffer
	tried        [][]rune
}

var _ Speller = (*VfstSpeller)(nil)

// automaton is the part of fst.Transducer the walk needs.
type automaton interface {
	Start() int
	Step(state int, b byte) (int, bool)
	Final(state int) bool
}

// NewVfstSpeller loads the speller transducer and configuration from dir.
// On failure no speller is returned and the error is a *dictionary.LoadError.
func NewVfstSpeller(dir string, opts ...options.Options) (*VfstSpeller, error) {
	d, err := dictionary.Load(dir, dictionary.Speller)
	if err != nil {
		return nil, err
	}
	s, err := newVfstSpeller(d, options.Resolve(opts...))
	if err != nil {
		d.Close()
		return nil, &dictionary.LoadError{Path: dir, Err: err}
	}
	return s, nil
}

func newVfstSpeller(d *dictionary.Dictionary, o options.SpellerOptions) (*VfstSpeller, error) {
	cfg := d.Config
	size := cfg.BufferSize
	if o.BufferSize > 0 {
		size = o.BufferSize
	}
	if size < cfg.MaxKeyBytes {
		return nil, fmt.Errorf("%w: buffer size %d < max_key_bytes %d", dictionary.ErrBufferTooSmall, size, cfg.MaxKeyBytes)
	}

	variants := cfg.Variants
	if o.Variants != nil {
		var err error
		if variants, err = dictionary.ParseVariants(o.Variants); err != nil {
			return nil, err
		}
	}

	compounds := cfg.HyphenCompounds
	if o.HyphenCompounds != nil {
		compounds = *o.HyphenCompounds
	}

	tag := language.Und
	if cfg.Language != "" {
		if t, err := language.Parse(cfg.Language); err == nil {
			tag = t
		} else {
			log.Printf("speller: unknown language %q, using root casing rules", cfg.Language)
		}
	}

	return &VfstSpeller{
		dict:         d,
		automaton:    d.Transducer,
		variants:     variants,
		compounds:    compounds,
		lower:        cases.Lower(tag),
		outputBuffer: newOutputBuffer(size),
	}, nil
}

// Spell implements Speller.
func (s *VfstSpeller) Spell(word []rune) Result {
	if s.dict == nil {
		panic(ErrTerminated)
	}
	if len(word) == 0 {
		return Failed
	}
	if s.spellVariants(word) {
		return OK
	}
	if s.compounds && slices.Contains(word, '-') && s.spellCompound(word) {
		return OK
	}
	return Failed
}

// spellCompound accepts a hyphenated word when every part is accepted on
// its own. Empty parts reject.
func (s *VfstSpeller) spellCompound(word []rune) bool {
	start := 0
	for i := 0; i <= len(word); i++ {
		if i < len(word) && word[i] != '-' {
			continue
		}
		if i == start || !s.spellVariants(word[start:i]) {
			return false
		}
		start = i + 1
	}
	return true
}

func (s *VfstSpeller) spellVariants(word []rune) bool {
	s.tried = s.tried[:0]
	for _, v := range s.variants {
		form := s.form(v, word)
		if s.alreadyTried(form) {
			continue
		}
		s.tried = append(s.tried, form)
		if s.doSpell(form) {
			return true
		}
	}
	return false
}

func (s *VfstSpeller) alreadyTried(form []rune) bool {
	for _, t := range s.tried {
		if slices.Equal(t, form) {
			return true
		}
	}
	return false
}

func (s *VfstSpeller) form(v dictionary.Variant, word []rune) []rune {
	switch v {
	case dictionary.VariantLowerFirst:
		first := []rune(s.lower.String(string(word[:1])))
		return append(first, word[1:]...)
	case dictionary.VariantLowerAll:
		return []rune(s.lower.String(string(word)))
	case dictionary.VariantNFC:
		return []rune(norm.NFC.String(string(word)))
	}
	return word
}

// doSpell walks form through the transducer one byte symbol at a time.
// Forms that do not fit the output buffer are rejected. A failure inside
// the automaton rejects the walk instead of crashing the caller.
func (s *VfstSpeller) doSpell(form []rune) (accepted bool) {
	if !s.outputBuffer.encode(form) {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("speller: walk of %q aborted: %v", string(form), r)
			accepted = false
		}
	}()
	t := s.automaton
	state := t.Start()
	for _, b := range s.outputBuffer.bytes() {
		next, ok := t.Step(state, b)
		if !ok {
			return false
		}
		state = next
	}
	return t.Final(state)
}

// Terminate implements Speller. It is safe to call more than once.
func (s *VfstSpeller) Terminate() {
	if s.dict == nil {
		return
	}
	if err := s.dict.Close(); err != nil {
		log.Printf("speller: close dictionary: %v", err)
	}
	s.dict = nil
	s.automaton = nil
	s.outputBuffer = nil
	s.tried = nil
}
