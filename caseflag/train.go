package caseflag

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Kiryukhasemenov/InFlags/internal/strcase"
	"github.com/Kiryukhasemenov/InFlags/tokenizer"
	"github.com/Kiryukhasemenov/InFlags/vocab"
)

// Trainer accumulates per-base casing statistics over a corpus, one
// line at a time. It owns its frequency table exclusively; the
// vocabulary is not observable until Vocab is called.
type Trainer struct {
	cfg     Config
	class   *tokenizer.Classifier
	builder *vocab.Builder
}

// NewTrainer validates cfg and returns an empty Trainer.
func NewTrainer(cfg Config) (*Trainer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Trainer{
		cfg:     cfg,
		class:   tokenizer.New(tokenizer.RuneTable(cfg.flagRunes()...)),
		builder: vocab.NewBuilder(),
	}, nil
}

// Add feeds one corpus line into the statistics.
//
// Unless IncludeAllcaps is set, fully uppercase lines are skipped so
// shouting text does not bias the counts. Unless IncludeSentInitial is
// set, the first word-forming token of each line is skipped: its casing
// is usually driven by sentence position, not lexical identity.
// Caseless tokens (digits, unicameral scripts) are never counted.
func (t *Trainer) Add(line string) {
	if !t.cfg.IncludeAllcaps && strcase.IsUpper(line) {
		return
	}
	line = norm.NFC.String(line)

	seenFirst := false
	for _, tok := range t.class.Tokenize(line) {
		if tok.Kind != tokenizer.Word {
			continue
		}
		if !t.cfg.IncludeSentInitial && !seenFirst {
			seenFirst = true
			continue
		}
		seenFirst = true
		base := strings.ToLower(tok.Text)
		if !strcase.HasCase(base) {
			continue
		}
		t.builder.Add(base, tok.Text)
	}
}

// Vocab builds the vocabulary from the statistics collected so far:
// for each base, the majority surface form, kept only when it differs
// from the base and was seen at least MinCount times.
func (t *Trainer) Vocab() vocab.Vocab {
	return t.builder.Build(t.cfg.MinCount)
}

// Codec builds a Codec from the statistics collected so far.
func (t *Trainer) Codec() *Codec {
	return &Codec{cfg: t.cfg, vocab: t.Vocab(), class: t.class}
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
