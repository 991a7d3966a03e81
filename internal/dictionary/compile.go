package dictionary

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"fstspell/internal/fst"
)

// DefaultClass is assigned to words listed without a class.
const DefaultClass = "word"

// Word is one dictionary entry.
type Word struct {
	Form  string
	Class string
}

// CompileOptions are written into both configurations.
type CompileOptions struct {
	Language        string
	Variants        []Variant
	HyphenCompounds bool
	BufferSize      int
}

// ReadWords parses a word list with one "form [class]" entry per line.
// Blank lines and lines starting with '#' are ignored.
func ReadWords(r io.Reader) ([]Word, error) {
	var out []Word
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		w := Word{Form: parts[0]}
		if len(parts) > 1 {
			w.Class = parts[1]
		}
		out = append(out, w)
	}
	return out, s.Err()
}

// Compile writes the speller and analyzer artifacts for words into dir,
// creating it if needed. The directory lock is held exclusively for the
// duration so that concurrent loads never see a mismatched pair.
func Compile(dir string, words []Word, opts CompileOptions) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	fl := flock.New(filepath.Join(dir, LockFile))
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", dir, err)
	}
	defer fl.Unlock()

	classIndex := map[string]uint64{}
	var classes []string
	spl := make([]fst.Entry, 0, len(words))
	mor := make([]fst.Entry, 0, len(words))
	for _, w := range words {
		class := w.Class
		if class == "" {
			class = DefaultClass
		}
		idx, ok := classIndex[class]
		if !ok {
			idx = uint64(len(classes))
			classIndex[class] = idx
			classes = append(classes, class)
		}
		spl = append(spl, fst.Entry{Key: w.Form})
		mor = append(mor, fst.Entry{Key: w.Form, Value: idx})
	}

	if err := compileArtifact(dir, Speller, spl, opts, nil); err != nil {
		return err
	}
	return compileArtifact(dir, Analyzer, mor, opts, classes)
}

func compileArtifact(dir, name string, entries []fst.Entry, opts CompileOptions, classes []string) error {
	var buf bytes.Buffer
	st, err := fst.Compile(&buf, entries)
	if err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}
	cfg := &Configuration{
		Version:         FormatVersion,
		Language:        opts.Language,
		Checksum:        Checksum(buf.Bytes()),
		Keys:            st.Keys,
		MaxKeyBytes:     st.MaxKeyBytes,
		BufferSize:      opts.BufferSize,
		Variants:        opts.Variants,
		HyphenCompounds: opts.HyphenCompounds,
		Classes:         classes,
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.BufferSize < cfg.MaxKeyBytes {
		cfg.BufferSize = cfg.MaxKeyBytes
	}

	if err := writeAtomic(TransducerPath(dir, name), buf.Bytes()); err != nil {
		return err
	}
	tmp := ConfigurationPath(dir, name) + ".tmp"
	if err := writeConfiguration(tmp, cfg); err != nil {
		return err
	}
	return os.Rename(tmp, ConfigurationPath(dir, name))
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
