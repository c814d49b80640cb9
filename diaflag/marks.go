package diaflag

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"
)

// combiningByName maps official Unicode names of nonspacing marks (Mn)
// to their runes, e.g. "COMBINING ACUTE ACCENT" -> U+0301. runenames
// has no reverse lookup, so the index is built once by walking the Mn
// range tables; it is process-wide immutable after that.
var combiningByName = sync.OnceValue(func() map[string]rune {
	index := make(map[string]rune, 2048)
	add := func(r rune) {
		if name := runenames.Name(r); name != "" {
			index[name] = r
		}
	}
	for _, r16 := range unicode.Mn.R16 {
		for r := rune(r16.Lo); r <= rune(r16.Hi); r += rune(r16.Stride) {
			add(r)
		}
	}
	for _, r32 := range unicode.Mn.R32 {
		for r := rune(r32.Lo); r <= rune(r32.Hi); r += rune(r32.Stride) {
			add(r)
		}
	}
	return index
})

// markTable is a Config compiled into lookup form: the configured
// combining marks, their flag glyphs, and the strip transformer.
// Immutable after newMarkTable; shared by Trainer and Codec.
type markTable struct {
	flagByMark map[rune]rune // combining mark -> flag glyph
	markByFlag map[rune]rune // flag glyph -> combining mark
	markSet    map[rune]bool // configured combining marks
	oov        rune
	bare       rune
	key        rune
	dict       rune

	// strip removes exactly the configured marks:
	// NFD -> remove(markSet) -> NFC.
	strip transform.Transformer
}

// newMarkTable resolves every configured diacritic name against the
// Unicode mark index and assigns flag glyphs in list order. An
// unresolvable name is a configuration error.
func newMarkTable(cfg Config) (*markTable, error) {
	t := &markTable{
		flagByMark: make(map[rune]rune, len(cfg.Diacritics)),
		markByFlag: make(map[rune]rune, len(cfg.Diacritics)),
		markSet:    make(map[rune]bool, len(cfg.Diacritics)),
		oov:        singleRune(cfg.OOVFlag),
		bare:       singleRune(cfg.BareFlag),
		key:        singleRune(cfg.KeyFlag),
		dict:       singleRune(cfg.DictFlag),
	}

	index := combiningByName()
	for i, name := range cfg.Diacritics {
		mark, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("diaflag config: unknown combining mark name %q", name)
		}
		flag := rune(flagBlockLo + i)
		if _, dup := t.flagByMark[mark]; dup {
			return nil, fmt.Errorf("diaflag config: duplicate diacritic name %q", name)
		}
		t.flagByMark[mark] = flag
		t.markByFlag[flag] = mark
		t.markSet[mark] = true
	}

	t.strip = transform.Chain(
		norm.NFD,
		runes.Remove(runes.Predicate(func(r rune) bool { return t.markSet[r] })),
		norm.NFC,
	)
	return t, nil
}

// dediacritize strips the configured marks from s. Marks outside the
// configured set are left in place.
func (t *markTable) dediacritize(s string) string {
	out, _, err := transform.String(t.strip, s)
	if err != nil {
		// norm and runes.Remove do not fail on valid UTF-8; on broken
		// input keep the original bytes.
		return s
	}
	return out
}

// detect maps each character offset of w (in composed runes) to the
// flag glyph of its configured diacritic, derived by canonical
// decomposition. Marks outside the configured set are ignored.
func (t *markTable) detect(w string) map[int]rune {
	found := make(map[int]rune)
	idx := 0
	for _, r := range w {
		decomposed := norm.NFD.String(string(r))
		if len([]rune(decomposed)) > 1 {
			for _, part := range decomposed {
				if flag, ok := t.flagByMark[part]; ok {
					found[idx] = flag
				}
			}
		}
		idx++
	}
	return found
}

// restore applies an offset -> flag glyph map to the base form,
// composing each flagged base character with its combining mark via
// canonical composition. OOV glyphs leave the position unmarked: the
// mark seen at training time is outside the configured set and cannot
// be reconstructed.
func (t *markTable) restore(base string, marks map[int]rune) string {
	if len(marks) == 0 {
		return base
	}
	var b strings.Builder
	b.Grow(len(base) + len(marks))
	for i, r := range []rune(base) {
		flag, ok := marks[i]
		if !ok || flag == t.oov {
			b.WriteRune(r)
			continue
		}
		mark, known := t.markByFlag[flag]
		if !known {
			b.WriteRune(r)
			continue
		}
		b.WriteString(norm.NFC.String(string(r) + string(mark)))
	}
	return b.String()
}

// singleRune returns the first rune of s, or utf8.RuneError for input
// that failed validation.
func singleRune(s string) rune {
	for _, r := range s {
		return r
	}
	return '�'
}
