// Package data embeds the bundled sample corpus.
package data

import _ "embed"

// SampleCorpus is a small line-oriented Czech corpus with diacritics
// and varied casing, used by the end-to-end pipeline script and as
// ready-made training input for quick experiments.
//
//go:embed corpus_cs.txt
var SampleCorpus string
