package diaflag

import (
	"golang.org/x/text/unicode/norm"

	"github.com/Kiryukhasemenov/InFlags/tokenizer"
	"github.com/Kiryukhasemenov/InFlags/vocab"
)

// Trainer accumulates per-base diacritization statistics over a
// corpus, one line at a time. It owns its frequency table exclusively;
// the vocabulary is not observable until Vocab is called.
type Trainer struct {
	cfg     Config
	marks   *markTable
	class   *tokenizer.Classifier
	builder *vocab.Builder
}

// NewTrainer validates cfg, resolves its diacritic names and returns
// an empty Trainer.
func NewTrainer(cfg Config) (*Trainer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	marks, err := newMarkTable(cfg)
	if err != nil {
		return nil, err
	}
	return &Trainer{
		cfg:     cfg,
		marks:   marks,
		class:   cfg.classifier(),
		builder: vocab.NewBuilder(),
	}, nil
}

// Add feeds one corpus line into the statistics. Every word token
// counts its surface form under its stripped base; undiacritized
// occurrences count too, so the majority form can legitimately be the
// bare base (which then produces no vocabulary entry).
func (t *Trainer) Add(line string) {
	line = norm.NFC.String(line)
	for _, tok := range t.class.Tokenize(line) {
		if tok.Kind != tokenizer.Word {
			continue
		}
		t.builder.Add(t.marks.dediacritize(tok.Text), tok.Text)
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
	return &Codec{cfg: t.cfg, vocab: t.Vocab(), marks: t.marks, class: t.class}
}
