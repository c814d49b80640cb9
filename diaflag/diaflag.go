// Package diaflag implements a reversible diacritic-flag codec: it
// strips a configured subset of diacritical marks from text while
// emitting, per token, a positional delta against the vocabulary's
// predicted diacritization.
//
// The configured diacritics are named by their official Unicode
// combining-mark names (e.g. "COMBINING CARON"). Encoding removes
// exactly those marks from every word token; where the resulting base
// does not map back to the original through the trained vocabulary, a
// flag token is emitted before the base carrying only the character
// offsets whose marks differ from the prediction. Each configured mark
// is assigned a circled-letter glyph in list order; two more glyphs are
// reserved: BARE ("the vocabulary predicts a mark here, the token has
// none") and OOV ("a mark outside the configured set was seen at
// training time" — such positions decode to the bare character, a
// known information-loss case).
//
// Distinct words that collapse to the same stripped base are accepted
// lexical ambiguity: the majority surface form wins at training time
// and the minority form costs a delta flag.
//
// Decoding is fail-soft: a malformed or dangling flag token is dropped
// with no effect on surrounding text.
package diaflag

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/Kiryukhasemenov/InFlags/tokenizer"
	"github.com/Kiryukhasemenov/InFlags/vocab"
)

// Flag glyphs for configured diacritics are drawn from the circled
// Latin letter block in list order: Ⓐ..ⓩ.
const (
	flagBlockLo = 0x24B6 // Ⓐ
	flagBlockHi = 0x24E9 // ⓩ

	// maxDiacritics is the size of the circled-letter block.
	maxDiacritics = flagBlockHi - flagBlockLo + 1
)

// Default auxiliary glyphs.
const (
	DefaultKeyFlag  = "\uA550" // ꕐ, separates offsets inside a flag token
	DefaultDictFlag = "\uA551" // ꕑ, opens a flag token and splits offsets from values
	DefaultOOVFlag  = "\u24EA" // ⓪, mark outside the configured set
	DefaultBareFlag = "\u24FF" // ⓿, no mark where the vocabulary predicts one
)

// OrderModeFreq marks the vocabulary's preferred form as the most
// frequent diacritization. It is the only supported order mode.
const OrderModeFreq = "freq"

// DefaultDiacritics are the three standard Czech diacritics.
func DefaultDiacritics() []string {
	return []string{
		"COMBINING ACUTE ACCENT",
		"COMBINING CARON",
		"COMBINING RING ABOVE",
	}
}

// Config is the diacritic codec's training configuration. It is
// persisted verbatim in the vocabulary file and treated as immutable
// afterwards. Flag glyphs for the configured diacritics are derived
// from list order, so the order is part of the contract.
type Config struct {
	// MinCount is the minimum observation count for a vocabulary entry.
	MinCount int `json:"min_count"`
	// OrderMode defines which form the vocabulary prefers; only "freq"
	// (most frequent) is supported.
	OrderMode string `json:"order_mode"`
	// Diacritics are the official Unicode names of the combining marks
	// handled by the codec, in flag-assignment order.
	Diacritics []string `json:"diacritics"`
	// KeyFlag, DictFlag, OOVFlag and BareFlag are the reserved
	// auxiliary glyphs.
	KeyFlag  string `json:"key_flag"`
	DictFlag string `json:"dict_flag"`
	OOVFlag  string `json:"oov_flag"`
	BareFlag string `json:"bare_flag"`
}

// DefaultConfig returns the reference configuration: min count 1,
// frequency order mode, the standard Czech diacritics, default glyphs.
func DefaultConfig() Config {
	return Config{
		MinCount:   1,
		OrderMode:  OrderModeFreq,
		Diacritics: DefaultDiacritics(),
		KeyFlag:    DefaultKeyFlag,
		DictFlag:   DefaultDictFlag,
		OOVFlag:    DefaultOOVFlag,
		BareFlag:   DefaultBareFlag,
	}
}

// validate checks glyph shape and the diacritic list size. Mark names
// are resolved later, in newMarkTable.
func (c Config) validate() error {
	if c.OrderMode != "" && c.OrderMode != OrderModeFreq {
		return fmt.Errorf("diaflag config: unsupported order mode %q", c.OrderMode)
	}
	if len(c.Diacritics) == 0 {
		return fmt.Errorf("diaflag config: no diacritics configured")
	}
	if len(c.Diacritics) > maxDiacritics {
		return fmt.Errorf("diaflag config: %d diacritics exceed the %d-glyph flag block",
			len(c.Diacritics), maxDiacritics)
	}
	glyphs := map[string]string{
		"key":  c.KeyFlag,
		"dict": c.DictFlag,
		"oov":  c.OOVFlag,
		"bare": c.BareFlag,
	}
	seen := make(map[string]string, len(glyphs))
	for name, g := range glyphs {
		if utf8.RuneCountInString(g) != 1 {
			return fmt.Errorf("diaflag config: %s flag %q must be a single rune", name, g)
		}
		if prev, dup := seen[g]; dup {
			return fmt.Errorf("diaflag config: %s and %s flags share glyph %q", prev, name, g)
		}
		seen[g] = name
	}
	return nil
}

// classifier builds the tokenizer classifier whose extra word-forming
// set covers the circled-letter flag block (category So, otherwise a
// separator) and the configured auxiliary glyphs.
func (c Config) classifier() *tokenizer.Classifier {
	extra := make([]rune, 0, maxDiacritics+4)
	for r := rune(flagBlockLo); r <= flagBlockHi; r++ {
		extra = append(extra, r)
	}
	for _, g := range []string{c.KeyFlag, c.DictFlag, c.OOVFlag, c.BareFlag} {
		extra = append(extra, singleRune(g))
	}
	return tokenizer.New(tokenizer.RuneTable(extra...))
}

// Codec encodes and decodes diacritics against a fixed vocabulary.
// Safe for concurrent use; all per-line state is local.
type Codec struct {
	cfg   Config
	vocab vocab.Vocab
	marks *markTable
	class *tokenizer.Classifier
}

// New constructs a Codec from a trained vocabulary and its config.
func New(v vocab.Vocab, cfg Config) (*Codec, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	marks, err := newMarkTable(cfg)
	if err != nil {
		return nil, err
	}
	return &Codec{cfg: cfg, vocab: v, marks: marks, class: cfg.classifier()}, nil
}

// Load reads a vocabulary file written by Save (or a Trainer) and
// constructs a Codec from it.
func Load(path string) (*Codec, error) {
	var cfg Config
	v, err := vocab.Load(path, &cfg)
	if err != nil {
		return nil, err
	}
	return New(v, cfg)
}

// Save persists the codec's vocabulary and config to path.
func (c *Codec) Save(path string) error {
	return vocab.Save(path, c.cfg, c.vocab)
}

// Config returns the codec's training configuration.
func (c *Codec) Config() Config { return c.cfg }

// Dediacritize strips the configured marks from s, leaving all other
// marks in place.
func (c *Codec) Dediacritize(s string) string {
	return c.marks.dediacritize(s)
}

// EncodeLine encodes one line. Input is NFC-normalized first: delta
// offsets are defined over composed characters.
func (c *Codec) EncodeLine(line string) string {
	line = norm.NFC.String(line)

	tokens := c.class.Tokenize(line)
	result := make([]tokenizer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != tokenizer.Word {
			result = append(result, tok)
			continue
		}
		base := c.marks.dediacritize(tok.Text)
		var text string
		if c.vocab.Get(base) == tok.Text {
			// The vocabulary already predicts this exact form.
			text = base
		} else {
			text = c.encodeToken(tok.Text, base)
		}
		result = append(result, tokenizer.Token{Text: text, Kind: tokenizer.Word})
	}
	return tokenizer.Detokenize(result)
}

// encodeToken emits the delta between the token's diacritics and the
// vocabulary prediction for its base: offsets where the marks already
// agree are omitted, a mark present only in the prediction contributes
// BARE, everything else contributes the token's own mark.
func (c *Codec) encodeToken(token, base string) string {
	inputMarks := c.marks.detect(token)
	predictedMarks := c.marks.detect(c.vocab.Get(base))

	delta := make(map[int]rune)
	for off, flag := range inputMarks {
		if predictedMarks[off] != flag {
			delta[off] = flag
		}
	}
	for off := range predictedMarks {
		if _, present := inputMarks[off]; !present {
			delta[off] = c.marks.bare
		}
	}

	if len(delta) == 0 {
		return base
	}
	return c.marks.formatDelta(delta) + " " + base
}

// DecodeLine decodes one line. A flag token is parsed and held
// pending; the next word token is resolved by overlaying the pending
// delta on the vocabulary prediction for its base, with BARE
// suppressing a predicted mark and OOV leaving the position unmarked.
// Pending state clears after every word token.
func (c *Codec) DecodeLine(line string) string {
	tokens := c.class.Tokenize(line)
	result := make([]tokenizer.Token, 0, len(tokens))
	var pending map[int]rune
	for _, tok := range tokens {
		if tok.Kind != tokenizer.Word {
			result = append(result, tok)
			continue
		}
		if strings.HasPrefix(tok.Text, string(c.marks.dict)) {
			// Malformed flags are dropped rather than emitted as text.
			pending, _ = c.marks.parseDelta(tok.Text)
			continue
		}
		result = append(result, tokenizer.Token{
			Text: c.decodeToken(tok.Text, pending),
			Kind: tokenizer.Word,
		})
		pending = nil
	}
	return tokenizer.Detokenize(result)
}

// decodeToken resolves a base against the pending delta and the
// vocabulary prediction for it.
func (c *Codec) decodeToken(base string, pending map[int]rune) string {
	predictedMarks := c.marks.detect(c.vocab.Get(base))

	resolved := make(map[int]rune, len(pending)+len(predictedMarks))
	for off, flag := range pending {
		if flag != c.marks.bare {
			resolved[off] = flag
		}
	}
	for off, flag := range predictedMarks {
		if _, overridden := pending[off]; !overridden {
			resolved[off] = flag
		}
	}
	return c.marks.restore(base, resolved)
}

// EncodeText encodes a multi-line string, line by line.
func (c *Codec) EncodeText(text string) string {
	return mapLines(text, c.EncodeLine)
}

// DecodeText decodes a multi-line string, line by line.
func (c *Codec) DecodeText(text string) string {
	return mapLines(text, c.DecodeLine)
}

func mapLines(text string, fn func(string) string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = fn(line)
	}
	return strings.Join(lines, "\n")
}

// Train consumes a line-oriented corpus and returns the trained
// vocabulary. An empty corpus yields an empty vocabulary.
func Train(r io.Reader, cfg Config) (vocab.Vocab, error) {
	t, err := NewTrainer(cfg)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)
	for scanner.Scan() {
		t.Add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}
	return t.Vocab(), nil
}
