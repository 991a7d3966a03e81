// Command dictc compiles a word list into a dictionary directory.
//
//	dictc -o dict/en -lang en words.txt
//
// Each input line holds "form [class]". With no file argument the list is
// read from stdin.
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"fstspell/internal/dictionary"
)

func main() {
	out := flag.String("o", "dict", "output dictionary directory")
	lang := flag.String("lang", "", "language tag stored in the configuration")
	variants := flag.String("variants", "", "comma-separated spelling variants (default exact,lower_first,lower_all)")
	hyphen := flag.Bool("hyphen", false, "accept hyphenated compounds of valid words")
	bufSize := flag.Int("buffer", dictionary.DefaultBufferSize, "speller output buffer size in bytes")
	flag.Parse()

	var in io.Reader = os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatalf("open word list: %v", err)
		}
		defer f.Close()
		in = f
	}

	words, err := dictionary.ReadWords(in)
	if err != nil {
		log.Fatalf("read word list: %v", err)
	}

	opts := dictionary.CompileOptions{
		Language:        *lang,
		HyphenCompounds: *hyphen,
		BufferSize:      *bufSize,
	}
	if *variants != "" {
		opts.Variants, err = dictionary.ParseVariants(strings.Split(*variants, ","))
		if err != nil {
			log.Fatalf("variants: %v", err)
		}
	}

	if err := dictionary.Compile(*out, words, opts); err != nil {
		log.Fatalf("compile: %v", err)
	}
	log.Printf("compiled %d words into %s", len(words), *out)
}
