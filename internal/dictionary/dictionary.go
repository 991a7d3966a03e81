// Package dictionary loads and compiles dictionary directories. A dictionary
// directory holds, per artifact name, a compiled transducer (<name>.vfst) and
// the configuration it was compiled with (<name>.yaml). The two are only
// ever handed out together.
package dictionary

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/gofrs/flock"

	"fstspell/internal/fst"
)

// Artifact names inside a dictionary directory.
const (
	Speller  = "spl"
	Analyzer = "mor"
	LockFile = "dict.lock"
)

var (
	ErrNotDirectory       = errors.New("not a directory")
	ErrMissingArtifact    = errors.New("missing dictionary artifact")
	ErrChecksumMismatch   = errors.New("transducer does not match configuration")
	ErrUnsupportedVersion = errors.New("unsupported configuration version")
	ErrUnknownVariant     = errors.New("unknown variant")
	ErrBufferTooSmall     = errors.New("output buffer smaller than longest key")
)

// LoadError reports a dictionary that could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dictionary %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Dictionary is a transducer together with its configuration.
type Dictionary struct {
	Path       string
	Name       string
	Transducer *fst.Transducer
	Config     *Configuration
}

// Close releases the transducer.
func (d *Dictionary) Close() error {
	if d.Transducer == nil {
		return nil
	}
	err := d.Transducer.Close()
	d.Transducer = nil
	d.Config = nil
	return err
}

// TransducerPath returns the location of the named transducer in dir.
func TransducerPath(dir, name string) string { return filepath.Join(dir, name+".vfst") }

// ConfigurationPath returns the location of the named configuration in dir.
func ConfigurationPath(dir, name string) string { return filepath.Join(dir, name+".yaml") }

// Checksum returns the pairing checksum of encoded transducer bytes.
func Checksum(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Load opens the named transducer and configuration in dir. Either both are
// returned or a *LoadError is.
func Load(dir, name string) (*Dictionary, error) {
	d, err := load(dir, name)
	if err != nil {
		return nil, &LoadError{Path: dir, Err: err}
	}
	return d, nil
}

func load(dir, name string) (*Dictionary, error) {
	st, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, ErrNotDirectory
	}

	lockPath := filepath.Join(dir, LockFile)
	if _, err := os.Stat(lockPath); err == nil {
		fl := flock.New(lockPath)
		if err := fl.RLock(); err != nil {
			return nil, fmt.Errorf("lock %s: %w", lockPath, err)
		}
		defer fl.Unlock()
	}

	cfg, err := readConfiguration(ConfigurationPath(dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingArtifact, filepath.Base(ConfigurationPath(dir, name)))
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	tr, err := fst.Open(TransducerPath(dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingArtifact, filepath.Base(TransducerPath(dir, name)))
	}
	if err != nil {
		return nil, err
	}
	if sum := Checksum(tr.Bytes()); sum != cfg.Checksum {
		tr.Close()
		return nil, fmt.Errorf("%w: checksum %s, configuration expects %s", ErrChecksumMismatch, sum, cfg.Checksum)
	}
	if tr.Len() != cfg.Keys {
		tr.Close()
		return nil, fmt.Errorf("%w: %d keys, configuration expects %d", ErrChecksumMismatch, tr.Len(), cfg.Keys)
	}

	log.Printf("dictionary: loaded %s/%s (%d keys)", dir, name, cfg.Keys)
	return &Dictionary{Path: dir, Name: name, Transducer: tr, Config: cfg}, nil
}
