package options

// DefaultOptions leaves every dictionary-defined setting in place.
var DefaultOptions = SpellerOptions{
	BufferSize:      0,
	Variants:        nil,
	HyphenCompounds: nil,
}

type SpellerOptions struct {
	BufferSize      int      // Output buffer capacity in bytes; 0 keeps the dictionary value
	Variants        []string // Variant order override; nil keeps the dictionary order
	HyphenCompounds *bool    // Overrides the dictionary compound flag when set
}

type Options interface {
	Apply(options *SpellerOptions)
}

type FuncConfig struct {
	ops func(options *SpellerOptions)
}

func (w FuncConfig) Apply(conf *SpellerOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *SpellerOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// Resolve applies opts over DefaultOptions.
func Resolve(opts ...Options) SpellerOptions {
	o := DefaultOptions
	for _, opt := range opts {
		opt.Apply(&o)
	}
	return o
}

func WithBufferSize(size int) Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.BufferSize = size
	})
}

func WithVariants(variants ...string) Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.Variants = append([]string(nil), variants...)
	})
}

func WithHyphenCompounds(enabled bool) Options {
	return NewFuncOption(func(options *SpellerOptions) {
		options.HyphenCompounds = &enabled
	})
}
