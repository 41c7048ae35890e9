// Package main implements the wordsplit command, which checks offline
// whether a text can be split into words from a dictionary.
//
// Usage:
//
//	wordsplit -text catsanddog -words cat,cats,and,sand,dog
//	echo catsanddog | wordsplit -dict words.yaml
//
// It prints true or false and exits 0 when the text can be segmented,
// 1 when it cannot and 2 on usage or input errors.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/wordsplit/internal/config"
	"github.com/phrazzld/wordsplit/internal/domain/segment"
	"github.com/phrazzld/wordsplit/internal/platform/logger"
)

// Exit codes.
const (
	exitSegmentable    = 0
	exitNotSegmentable = 1
	exitUsage          = 2
)

var errNoDictionary = errors.New("one of -words or -dict is required")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns its exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wordsplit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	text := fs.String("text", "", "text to check; read from stdin when omitted")
	words := fs.String("words", "", "comma-separated dictionary words")
	dictPath := fs.String("dict", "", "dictionary file (.yaml/.yml list, otherwise one word per line)")
	logLevel := fs.String("log-level", "error", "log level for diagnostics on stderr (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if _, ok := logger.ParseLevel(*logLevel); !ok {
		fmt.Fprintf(stderr, "wordsplit: unknown log level %q\n", *logLevel)
		return exitUsage
	}
	log, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: *logLevel}, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "wordsplit: setting up logger: %v\n", err)
		return exitUsage
	}

	textSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "text" {
			textSet = true
		}
	})

	input := *text
	if !textSet {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "wordsplit: reading stdin: %v\n", err)
			return exitUsage
		}
		input = strings.TrimRight(string(raw), "\r\n")
	}

	dictWords, err := collectWords(*words, *dictPath)
	if err != nil {
		fmt.Fprintf(stderr, "wordsplit: %v\n", err)
		return exitUsage
	}

	dict := segment.NewDictionary(dictWords...)
	log.Debug("dictionary loaded",
		slog.Int("words", dict.Len()),
		slog.Int("min_word_length", dict.MinWordLength()),
		slog.Int("text_length", len(input)))

	ok := segment.CanSegment(input, dict)
	fmt.Fprintln(stdout, ok)
	if ok {
		return exitSegmentable
	}
	return exitNotSegmentable
}

// collectWords merges the inline word list and the dictionary file.
func collectWords(inline, path string) ([]string, error) {
	if inline == "" && path == "" {
		return nil, errNoDictionary
	}

	var words []string
	if inline != "" {
		for i, w := range strings.Split(inline, ",") {
			w = strings.TrimSpace(w)
			if w == "" {
				return nil, fmt.Errorf("-words: empty word at position %d", i+1)
			}
			words = append(words, w)
		}
	}

	if path != "" {
		fileWords, err := loadDictionaryFile(path)
		if err != nil {
			return nil, err
		}
		words = append(words, fileWords...)
	}

	return words, nil
}
