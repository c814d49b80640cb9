// Package vocab holds the frequency-trained vocabulary shared by the
// case and diacritic codecs: a sparse mapping from a normalized base
// form to the surface form most often observed for it in a training
// corpus.
//
// The vocabulary is deliberately sparse. An entry exists only when the
// majority surface form differs from the base and was seen at least
// min-count times; an absent base is not an error, it means the codec's
// default policy already predicts the surface form.
//
// Counting happens in a Builder, a mutable structure owned by the
// trainer for the duration of a corpus pass. Build produces the final
// Vocab; the Builder is never exposed alongside it.
package vocab

// Vocab maps a base form to its preferred surface form. Treated as
// read-only after training.
type Vocab map[string]string

// Get returns the preferred surface form for base, or "" when the base
// is unknown.
func (v Vocab) Get(base string) string {
	return v[base]
}

// Builder accumulates surface-form frequencies per base during a
// training pass.
type Builder struct {
	counts map[string]map[string]int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{counts: make(map[string]map[string]int)}
}

// Add records one observation of form under base.
func (b *Builder) Add(base, form string) {
	forms := b.counts[base]
	if forms == nil {
		forms = make(map[string]int)
		b.counts[base] = forms
	}
	forms[form]++
}

// Build selects, for each base, the most frequent surface form and
// keeps it when its count is at least minCount and it differs from the
// base. An empty Builder yields an empty (non-nil) Vocab.
//
// Frequency ties are broken by the lexicographically smaller form so
// that training is deterministic across runs.
func (b *Builder) Build(minCount int) Vocab {
	v := make(Vocab, len(b.counts))
	for base, forms := range b.counts {
		form, count := mostCommon(forms)
		if count >= minCount && form != base {
			v[base] = form
		}
	}
	return v
}

// mostCommon returns the highest-count form, ties broken by the
// lexicographically smaller form.
func mostCommon(forms map[string]int) (string, int) {
	var best string
	bestCount := -1
	for form, count := range forms {
		if count > bestCount || (count == bestCount && form < best) {
			best, bestCount = form, count
		}
	}
	return best, bestCount
}
