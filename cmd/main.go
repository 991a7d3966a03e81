package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"fstspell/internal/config"
	sc "fstspell/internal/corrector"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config")
	dictPath := flag.String("dict", "", "dictionary directory (overrides config)")
	suggest := flag.Bool("s", false, "print suggestions for misspelled words")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if *dictPath != "" {
		cfg.Dictionary.Path = *dictPath
	}

	corrector, err := sc.NewSpellCorrector(cfg.Corrector(), cfg.Dictionary.Path, nil)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}
	defer corrector.Terminate()

	if err := run(os.Stdin, os.Stdout, corrector, *suggest); err != nil {
		log.Fatal(err)
	}
}

type wordChecker interface {
	Spell(word string) bool
	Suggest(word string) ([]string, error)
}

// run checks one word per input line. Correct words print as "C: word",
// misspelled ones as "W: word", followed by "S: a, b" when suggestions are
// requested and found.
func run(in io.Reader, out io.Writer, c wordChecker, suggest bool) error {
	w := bufio.NewWriter(out)
	defer w.Flush()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		if c.Spell(word) {
			fmt.Fprintf(w, "C: %s\n", word)
			continue
		}
		fmt.Fprintf(w, "W: %s\n", word)
		if !suggest {
			continue
		}
		list, err := c.Suggest(word)
		if err != nil {
			return fmt.Errorf("suggest %q: %w", word, err)
		}
		if len(list) > 0 {
			fmt.Fprintf(w, "S: %s\n", strings.Join(list, ", "))
		}
	}
	return scanner.Err()
}
