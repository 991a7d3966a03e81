package dictionary

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FormatVersion is the configuration format this package reads and writes.
const FormatVersion = 1

// DefaultBufferSize is the output buffer capacity used when the
// configuration does not set one.
const DefaultBufferSize = 2000

// Variant names a normalized form of a word tried by the speller.
type Variant string

const (
	VariantExact      Variant = "exact"
	VariantLowerFirst Variant = "lower_first"
	VariantLowerAll   Variant = "lower_all"
	VariantNFC        Variant = "nfc"
)

// DefaultVariants is the order used when a configuration lists none.
var DefaultVariants = []Variant{VariantExact, VariantLowerFirst, VariantLowerAll}

// Configuration holds the rules compiled alongside one transducer.
type Configuration struct {
	Version         int       `yaml:"version"`
	Language        string    `yaml:"language,omitempty"`
	Checksum        string    `yaml:"checksum"`
	Keys            int       `yaml:"keys"`
	MaxKeyBytes     int       `yaml:"max_key_bytes"`
	BufferSize      int       `yaml:"buffer_size,omitempty"`
	Variants        []Variant `yaml:"variants,omitempty"`
	HyphenCompounds bool      `yaml:"hyphen_compounds,omitempty"`
	Classes         []string  `yaml:"classes,omitempty"`
}

func readConfiguration(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Configuration
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(c.Variants) == 0 {
		c.Variants = append([]Variant(nil), DefaultVariants...)
	}
	if c.BufferSize == 0 {
		c.BufferSize = DefaultBufferSize
	}
	return &c, nil
}

func writeConfiguration(path string, c *Configuration) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Configuration) validate() error {
	if c.Version != FormatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, c.Version)
	}
	for _, v := range c.Variants {
		if _, err := ParseVariants([]string{string(v)}); err != nil {
			return err
		}
	}
	if c.BufferSize < c.MaxKeyBytes {
		return fmt.Errorf("%w: buffer_size %d < max_key_bytes %d", ErrBufferTooSmall, c.BufferSize, c.MaxKeyBytes)
	}
	return nil
}

// Class returns the word class name stored under index i, or "" if the
// configuration has no such class.
func (c *Configuration) Class(i uint64) string {
	if i >= uint64(len(c.Classes)) {
		return ""
	}
	return c.Classes[i]
}

// ParseVariants converts variant names, rejecting unknown ones.
func ParseVariants(names []string) ([]Variant, error) {
	out := make([]Variant, 0, len(names))
	for _, n := range names {
		v := Variant(n)
		switch v {
		case VariantExact, VariantLowerFirst, VariantLowerAll, VariantNFC:
			out = append(out, v)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, n)
		}
	}
	return out, nil
}
