package corrector

import "fstspell/internal/suggestion"

type CorrectorConfig struct {
	MaxSuggestions    int
	MaxCost           int
	Replacements      []string // Replacement set of the multi-replacement generators
	ReplaceCounts     []int    // One multi-replacement generator per count, in order
	KeyboardRows      []string
	KeyboardDistance  float64
	InsertionAlphabet string
	EnableDeletion    bool
	EnableSwap        bool
	LevenshteinDist   int
	FilterShortWords  bool
	BufferSize        int
	Variants          []string
	HyphenCompounds   *bool // nil keeps the dictionary setting
}

// DefaultConfig suits Latin-alphabet dictionaries.
func DefaultConfig() CorrectorConfig {
	return CorrectorConfig{
		MaxSuggestions:    5,
		MaxCost:           0,
		Replacements:      []string{"a", "e", "i", "o", "u", "y"},
		ReplaceCounts:     []int{1, 2},
		KeyboardRows:      suggestion.QwertyRows,
		KeyboardDistance:  1.0,
		InsertionAlphabet: "abcdefghijklmnopqrstuvwxyz",
		EnableDeletion:    true,
		EnableSwap:        true,
		LevenshteinDist:   0,
		FilterShortWords:  true,
	}
}

type SuggestionInfo struct {
	Token       string   `json:"token"`
	Suggestions []string `json:"suggestions"`
	Decision    string   `json:"decision"`
}

type CorrectionResult struct {
	Original    string                 `json:"original"`
	Corrected   string                 `json:"corrected"`
	Suggestions map[int]SuggestionInfo `json:"suggestions"`
}

// Decisions attached to a misspelled token.
const (
	DecisionAutoReplace = "auto_replace"
	DecisionHintOnly    = "hint_only"
)
