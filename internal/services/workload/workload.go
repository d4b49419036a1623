package workload

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math/big"
	"sort"
	"strings"
	"unicode"

	"github.com/dariasmyr/stopwatch/internal/utils/clean"
	snowballeng "github.com/kljensen/snowball/english"
)

var ErrUnknownWorkload = errors.New("unknown workload")

// Func is a unit of work to be timed. The returned string keeps the
// computed result observable.
type Func func(ctx context.Context) (string, error)

type Set struct {
	funcs map[string]Func
}

func New(factorialN int, text string) *Set {
	return &Set{
		funcs: map[string]Func{
			"factorial": func(ctx context.Context) (string, error) {
				return Factorial(ctx, factorialN)
			},
			"stem": func(ctx context.Context) (string, error) {
				return strings.Join(PreprocessText(text), " "), ctx.Err()
			},
			"clean": func(ctx context.Context) (string, error) {
				return clean.Clean(text), ctx.Err()
			},
		},
	}
}

func (s *Set) Lookup(name string) (Func, error) {
	fn, ok := s.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWorkload, name)
	}
	return fn, nil
}

func (s *Set) Names() []string {
	names := make([]string, 0, len(s.funcs))
	for name := range s.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Factorial returns n! in decimal.
func Factorial(ctx context.Context, n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("factorial of negative number %d", n)
	}

	acc := big.NewInt(1)
	for i := 2; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		acc.Mul(acc, big.NewInt(int64(i)))
	}

	return acc.String(), nil
}

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "if": {}, "in": {}, "into": {}, "is": {},
	"it": {}, "no": {}, "not": {}, "of": {}, "on": {}, "or": {}, "such": {},
	"that": {}, "the": {}, "their": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "to": {}, "was": {}, "were": {}, "will": {},
	"with": {}, "while": {},
}

func Tokenize(content string) iter.Seq[string] {
	return func(yield func(string) bool) {
		lastSplit := 0

		for i, char := range content {
			if !unicode.IsLetter(char) && !unicode.IsNumber(char) {
				if i-lastSplit != 0 && !yield(content[lastSplit:i]) {
					return
				}
				lastSplit = i + len(string(char))
			}
		}

		if len(content)-lastSplit != 0 {
			yield(content[lastSplit:])
		}
	}
}

func ToLower(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for token := range seq {
			if !yield(strings.ToLower(token)) {
				return
			}
		}
	}
}

func FilterStopWords(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for token := range seq {
			if _, ok := stopWords[token]; !ok {
				if !yield(token) {
					return
				}
			}
		}
	}
}

func Stem(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for token := range seq {
			if !yield(snowballeng.Stem(token, false)) {
				return
			}
		}
	}
}

func PreprocessText(content string) []string {
	tokens := Tokenize(content)
	tokens = ToLower(tokens)
	tokens = FilterStopWords(tokens)
	tokens = Stem(tokens)

	var words []string
	for token := range tokens {
		words = append(words, token)
	}
	return words
}
