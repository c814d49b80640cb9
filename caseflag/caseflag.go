// Package caseflag implements a reversible case-flag codec: it strips
// surface letter-casing from text while emitting, per token, just
// enough side information to reconstruct it.
//
// Encoding lowercases every word token and prefixes a reserved flag
// glyph only where the casing cannot be predicted. Predictions come
// from two sources: a frequency-trained vocabulary of preferred surface
// forms (see the vocab package) and two positional defaults — the first
// word of a line is assumed capitalized, every other word lowercase.
// A token whose casing matches the prediction is emitted bare.
//
// Four flags exist: UPPER, TITLE and LOWER apply to the next word
// token; ALLCAPS replaces a fully uppercase multi-word line with a
// single leading flag plus the lowercased line.
//
// A naive mode ignores the vocabulary entirely and flags every cased
// token from its own shape, for dictionary-free operation.
//
// Decoding is fail-soft: a flag glyph not followed by a word token
// (e.g. at end of line) is dropped with no effect, and an unknown base
// simply falls back to the positional default.
//
// Mixed-case tokens (neither lowercase, uppercase, nor titlecase) are
// not flag-encodable and pass through unmodified.
package caseflag

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/Kiryukhasemenov/InFlags/internal/strcase"
	"github.com/Kiryukhasemenov/InFlags/tokenizer"
	"github.com/Kiryukhasemenov/InFlags/vocab"
)

// Default flag glyphs: Vai syllables, disjoint from ordinary text.
const (
	DefaultUpperFlag   = "\uA505" // ꔅ
	DefaultTitleFlag   = "\uA506" // ꔆ
	DefaultLowerFlag   = "\uA52A" // ꔪ
	DefaultAllcapsFlag = "\uA52B" // ꔫ
)

// Flags assigns one reserved glyph per casing flag.
type Flags struct {
	Upper   string `json:"upper"`
	Title   string `json:"title"`
	Lower   string `json:"lower"`
	Allcaps string `json:"allcaps"`
}

// Config is the case codec's training configuration. It is persisted
// verbatim in the vocabulary file and treated as immutable afterwards.
type Config struct {
	// MinCount is the minimum observation count for a vocabulary entry.
	MinCount int `json:"min_count"`
	// Flags are the reserved flag glyphs.
	Flags Flags `json:"flags"`
	// IncludeAllcaps disables both the all-uppercase line skip during
	// training and the ALLCAPS line shortcut during encode/decode.
	IncludeAllcaps bool `json:"include_allcaps"`
	// IncludeSentInitial counts sentence-initial words in the training
	// statistics and disables the capitalized-first-word default.
	IncludeSentInitial bool `json:"include_sent_initial"`
}

// DefaultConfig returns the reference configuration: min count 1,
// default glyphs, all-caps lines and sentence-initial words excluded.
func DefaultConfig() Config {
	return Config{
		MinCount: 1,
		Flags: Flags{
			Upper:   DefaultUpperFlag,
			Title:   DefaultTitleFlag,
			Lower:   DefaultLowerFlag,
			Allcaps: DefaultAllcapsFlag,
		},
	}
}

// validate checks that every flag is a single rune and all four are
// distinct.
func (c Config) validate() error {
	glyphs := map[string]string{
		"upper":   c.Flags.Upper,
		"title":   c.Flags.Title,
		"lower":   c.Flags.Lower,
		"allcaps": c.Flags.Allcaps,
	}
	seen := make(map[string]string, len(glyphs))
	for name, g := range glyphs {
		if utf8.RuneCountInString(g) != 1 {
			return fmt.Errorf("caseflag config: %s flag %q must be a single rune", name, g)
		}
		if prev, dup := seen[g]; dup {
			return fmt.Errorf("caseflag config: %s and %s flags share glyph %q", prev, name, g)
		}
		seen[g] = name
	}
	return nil
}

// flagRunes returns the flag glyphs as runes, for the classifier's
// extra word-forming table.
func (c Config) flagRunes() []rune {
	runes := make([]rune, 0, 4)
	for _, g := range []string{c.Flags.Upper, c.Flags.Title, c.Flags.Lower, c.Flags.Allcaps} {
		r, _ := utf8.DecodeRuneInString(g)
		runes = append(runes, r)
	}
	return runes
}

// pendingFlag is the per-line decode state machine register.
type pendingFlag int

const (
	flagNone pendingFlag = iota
	flagUpper
	flagTitle
	flagLower
)

// Codec encodes and decodes letter-casing against a fixed vocabulary.
// Safe for concurrent use; all per-line state is local.
type Codec struct {
	cfg   Config
	vocab vocab.Vocab
	class *tokenizer.Classifier

	// FavorTitle makes naive encoding flag a single uppercase letter as
	// titlecase instead of uppercase.
	FavorTitle bool
}

// New constructs a Codec from a trained vocabulary and its config.
func New(v vocab.Vocab, cfg Config) (*Codec, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Codec{
		cfg:   cfg,
		vocab: v,
		class: tokenizer.New(tokenizer.RuneTable(cfg.flagRunes()...)),
	}, nil
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

// EncodeLine encodes one line using the vocabulary.
func (c *Codec) EncodeLine(line string) string {
	return c.encodeLine(line, false)
}

// EncodeLineNaive encodes one line ignoring the vocabulary: every cased
// token is explicitly flagged from its own shape.
func (c *Codec) EncodeLineNaive(line string) string {
	return c.encodeLine(line, true)
}

// DecodeLine decodes one line using the vocabulary.
func (c *Codec) DecodeLine(line string) string {
	return c.decodeLine(line, false)
}

// DecodeLineNaive decodes one line applying flags only; the vocabulary
// and the capitalized-first-word default are skipped.
func (c *Codec) DecodeLineNaive(line string) string {
	return c.decodeLine(line, true)
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

func (c *Codec) encodeLine(line string, naive bool) string {
	line = norm.NFC.String(line)

	// A fully uppercase multi-word line collapses to one ALLCAPS flag.
	if !c.cfg.IncludeAllcaps && strcase.IsUpper(line) && strings.Contains(line, " ") {
		return c.cfg.Flags.Allcaps + " " + strings.ToLower(line)
	}

	tokens := c.class.Tokenize(line)
	result := make([]tokenizer.Token, 0, len(tokens))
	seenFirst := false
	for _, tok := range tokens {
		if tok.Kind != tokenizer.Word {
			result = append(result, tok)
			continue
		}
		var text string
		if naive {
			text = c.encodeTokenNaive(tok.Text)
		} else {
			isFirst := !seenFirst && !c.cfg.IncludeSentInitial
			text = c.encodeToken(tok.Text, isFirst)
		}
		seenFirst = true
		result = append(result, tokenizer.Token{Text: text, Kind: tokenizer.Word})
	}
	return tokenizer.Detokenize(result)
}

// encodeToken applies the vocabulary-driven decision table to a single
// word token. isFirst marks the first word-forming token of the line.
func (c *Codec) encodeToken(token string, isFirst bool) string {
	lc := strings.ToLower(token)

	if form := c.vocab.Get(lc); form != "" {
		if token == form {
			// The vocabulary already predicts this exact casing.
			return lc
		}
		if isFirst {
			if token == strcase.Capitalize(token) {
				return c.cfg.Flags.Title + " " + lc
			}
		} else if token == lc {
			return c.cfg.Flags.Lower + " " + lc
		}
		// Other vocab mismatches fall through to the generic rules.
	}

	if token == lc {
		if isFirst {
			if token == strcase.Capitalize(token) {
				// Caseless first token (digits, CJK): bare.
				return lc
			}
			// The decoder capitalizes the first word by default, so an
			// intentionally lowercase first word needs an explicit flag.
			return c.cfg.Flags.Lower + " " + lc
		}
		return lc
	}
	if strcase.IsUpper(token) {
		// Single-letter words like "I" land here too.
		return c.cfg.Flags.Upper + " " + lc
	}
	if token == strcase.Capitalize(token) {
		if isFirst {
			// Capitalization is the decoder's default for the first word.
			return lc
		}
		return c.cfg.Flags.Title + " " + lc
	}
	// Mixed case is not flag-encodable; pass through.
	return token
}

// encodeTokenNaive flags a token purely from its own casing shape.
func (c *Codec) encodeTokenNaive(token string) string {
	lc := strings.ToLower(token)
	if token == lc {
		return token
	}
	if utf8.RuneCountInString(token) == 1 {
		if strcase.IsUpper(token) {
			if c.FavorTitle {
				return c.cfg.Flags.Title + " " + lc
			}
			return c.cfg.Flags.Upper + " " + lc
		}
		return token
	}
	if strcase.IsUpper(token) {
		return c.cfg.Flags.Upper + " " + lc
	}
	if token == strcase.Capitalize(token) {
		return c.cfg.Flags.Title + " " + lc
	}
	// Mixed case passes through.
	return token
}

func (c *Codec) decodeLine(line string, naive bool) string {
	if !c.cfg.IncludeAllcaps {
		if prefix := c.cfg.Flags.Allcaps + " "; strings.HasPrefix(line, prefix) {
			return norm.NFC.String(strings.ToUpper(strings.TrimPrefix(line, prefix)))
		}
	}

	tokens := c.class.Tokenize(line)
	result := make([]tokenizer.Token, 0, len(tokens))
	pending := flagNone
	seenFirst := false
	for _, tok := range tokens {
		if tok.Kind != tokenizer.Word {
			result = append(result, tok)
			continue
		}
		switch tok.Text {
		case c.cfg.Flags.Upper:
			pending = flagUpper
			continue
		case c.cfg.Flags.Title:
			pending = flagTitle
			continue
		case c.cfg.Flags.Lower:
			pending = flagLower
			continue
		}

		text := tok.Text
		switch pending {
		case flagUpper:
			text = strings.ToUpper(text)
		case flagTitle:
			text = strcase.Capitalize(text)
		case flagLower:
			text = strings.ToLower(text)
		default:
			if !naive {
				if form := c.vocab.Get(text); form != "" {
					text = form
				} else if !c.cfg.IncludeSentInitial && !seenFirst && text == strings.ToLower(text) {
					// Sentence-initial default: capitalize.
					text = strcase.Capitalize(text)
				}
			}
		}
		result = append(result, tokenizer.Token{Text: text, Kind: tokenizer.Word})
		pending = flagNone
		seenFirst = true
	}
	// A flag at end of line has nothing to apply to and is dropped.
	return norm.NFC.String(tokenizer.Detokenize(result))
}
