// Package tokenizer splits a line of text into maximal runs of
// word-forming and separator characters, and reassembles them.
//
// A character is word-forming when its Unicode general category is a
// letter (L) or a number (N); everything else is a separator. A
// Classifier may additionally treat a reserved glyph block as
// word-forming so that flag tokens emitted by the codecs tokenize as
// single words.
//
// The single space between two word-forming runs is implicit: Tokenize
// suppresses it and Detokenize reinserts exactly one space between two
// adjacent word-forming tokens. The invariant
//
//	Detokenize(c.Tokenize(line)) == line
//
// holds for every line that contains no reserved flag glyphs.
//
// All functions are safe for concurrent use by multiple goroutines.
package tokenizer

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind classifies a token by the classification of its characters.
type Kind int

const (
	Word      Kind = iota // maximal run of word-forming characters
	Separator             // maximal run of separator characters
)

// String returns the name of the token kind.
func (k Kind) String() string {
	switch k {
	case Word:
		return "Word"
	case Separator:
		return "Separator"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is a contiguous run of same-classified characters.
// Immutable once produced.
type Token struct {
	Text string
	Kind Kind
}

// String returns a debug representation, e.g. Word("berlin").
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// Classifier decides whether a rune is word-forming. The zero value is
// not usable; construct with New.
type Classifier struct {
	extra *unicode.RangeTable
}

// New returns a Classifier. An optional extra range table extends the
// word-forming set beyond Unicode letters and numbers; the codecs use
// it for their reserved flag-glyph block.
func New(extra ...*unicode.RangeTable) *Classifier {
	c := &Classifier{}
	if len(extra) > 0 {
		c.extra = extra[0]
	}
	return c
}

// WordForming reports whether r is a word-forming character.
func (c *Classifier) WordForming(r rune) bool {
	if unicode.In(r, unicode.L, unicode.N) {
		return true
	}
	return c.extra != nil && unicode.Is(c.extra, r)
}

// Tokenize splits line into an ordered sequence of maximal same-class
// runs. A run that is exactly one space is suppressed unless it starts
// the line; the final run is always kept. An empty line yields nil.
func (c *Classifier) Tokenize(line string) []Token {
	if line == "" {
		return nil
	}

	runes := []rune(line)
	wordForming := make([]bool, len(runes))
	for i, r := range runes {
		wordForming[i] = c.WordForming(r)
	}

	tokens := make([]Token, 0, len(runes)/4+1)
	start := 0
	for pos := 1; pos < len(runes); pos++ {
		if wordForming[pos] == wordForming[pos-1] {
			continue
		}
		text := string(runes[start:pos])
		if text != " " || start == 0 {
			tokens = append(tokens, Token{Text: text, Kind: kindOf(wordForming[start])})
		}
		start = pos
	}
	tokens = append(tokens, Token{Text: string(runes[start:]), Kind: kindOf(wordForming[start])})
	return tokens
}

// Detokenize reassembles tokens into a line, inserting one space
// between two adjacent word-forming tokens. Detokenizing an empty
// sequence yields the empty string.
func Detokenize(tokens []Token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && tok.Kind == Word && tokens[i-1].Kind == Word {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

func kindOf(wordForming bool) Kind {
	if wordForming {
		return Word
	}
	return Separator
}
