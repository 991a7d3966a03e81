package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"fstspell/internal/corrector"
	"fstspell/internal/suggestion"
)

type Config struct {
	Dictionary  DictionaryConfig  `yaml:"dictionary"`
	Server      ServerConfig      `yaml:"server"`
	Redis       RedisConfig       `yaml:"redis"`
	Suggestions SuggestionsConfig `yaml:"suggestions"`
}

type DictionaryConfig struct {
	Path            string   `yaml:"path"`
	BufferSize      int      `yaml:"buffer_size"`
	Variants        []string `yaml:"variants"`
	HyphenCompounds *bool    `yaml:"hyphen_compounds"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type SuggestionsConfig struct {
	MaxSuggestions    int      `yaml:"max_suggestions"`
	MaxCost           int      `yaml:"max_cost"`
	Replacements      []string `yaml:"replacements"`
	ReplaceCounts     []int    `yaml:"replace_counts"`
	Keyboard          string   `yaml:"keyboard"`
	KeyboardDistance  float64  `yaml:"keyboard_distance"`
	InsertionAlphabet string   `yaml:"insertion_alphabet"`
	Deletion          bool     `yaml:"deletion"`
	Swap              bool     `yaml:"swap"`
	Levenshtein       int      `yaml:"levenshtein"`
	FilterShortWords  bool     `yaml:"filter_short_words"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	d := corrector.DefaultConfig()
	return &Config{
		Dictionary: DictionaryConfig{Path: "dict"},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Suggestions: SuggestionsConfig{
			MaxSuggestions:    d.MaxSuggestions,
			MaxCost:           d.MaxCost,
			Replacements:      d.Replacements,
			ReplaceCounts:     d.ReplaceCounts,
			Keyboard:          "qwerty",
			KeyboardDistance:  d.KeyboardDistance,
			InsertionAlphabet: d.InsertionAlphabet,
			Deletion:          d.EnableDeletion,
			Swap:              d.EnableSwap,
			Levenshtein:       d.LevenshteinDist,
			FilterShortWords:  d.FilterShortWords,
		},
	}
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	cfg.applyEnv()
	if _, err := keyboardRows(cfg.Suggestions.Keyboard); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Dictionary.Path = getenv("DICTIONARY_PATH", c.Dictionary.Path)
	c.Server.Addr = getenv("HTTP_ADDR", c.Server.Addr)
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}
	c.Redis.Password = getenv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)
}

func keyboardRows(name string) ([]string, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "qwerty":
		return suggestion.QwertyRows, nil
	case "jcuken":
		return suggestion.JcukenRows, nil
	}
	return nil, fmt.Errorf("unknown keyboard layout %q", name)
}

// Corrector converts the suggestion and dictionary settings.
func (c *Config) Corrector() corrector.CorrectorConfig {
	rows, _ := keyboardRows(c.Suggestions.Keyboard)
	s := c.Suggestions
	return corrector.CorrectorConfig{
		MaxSuggestions:    s.MaxSuggestions,
		MaxCost:           s.MaxCost,
		Replacements:      s.Replacements,
		ReplaceCounts:     s.ReplaceCounts,
		KeyboardRows:      rows,
		KeyboardDistance:  s.KeyboardDistance,
		InsertionAlphabet: s.InsertionAlphabet,
		EnableDeletion:    s.Deletion,
		EnableSwap:        s.Swap,
		LevenshteinDist:   s.Levenshtein,
		FilterShortWords:  s.FilterShortWords,
		BufferSize:        c.Dictionary.BufferSize,
		Variants:          c.Dictionary.Variants,
		HyphenCompounds:   c.Dictionary.HyphenCompounds,
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}
