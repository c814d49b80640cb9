package diaflag

import (
	"sort"
	"strconv"
	"strings"
)

// formatDelta serializes an offset -> flag glyph delta as
//
//	DICT k1 KEY k2 KEY ... KEY kn DICT v1v2...vn
//
// with offsets in ascending order and value glyphs aligned
// positionally. The caller guarantees delta is non-empty.
func (t *markTable) formatDelta(delta map[int]rune) string {
	offsets := make([]int, 0, len(delta))
	for k := range delta {
		offsets = append(offsets, k)
	}
	sort.Ints(offsets)

	var b strings.Builder
	b.WriteRune(t.dict)
	for i, off := range offsets {
		if i > 0 {
			b.WriteRune(t.key)
		}
		b.WriteString(strconv.Itoa(off))
	}
	b.WriteRune(t.dict)
	for _, off := range offsets {
		b.WriteRune(delta[off])
	}
	return b.String()
}

// parseDelta parses a token produced by formatDelta back into an
// offset -> flag glyph map. The token must start with the DICT glyph;
// a malformed body yields ok=false so the decoder can drop the flag
// without corrupting output. Offset/value sequences of unequal length
// are paired up to the shorter one.
func (t *markTable) parseDelta(token string) (delta map[int]rune, ok bool) {
	dict := string(t.dict)
	rest, found := strings.CutPrefix(token, dict)
	if !found {
		return nil, false
	}
	keysPart, valuesPart, found := strings.Cut(rest, dict)
	if !found {
		return nil, false
	}

	var offsets []int
	for _, field := range strings.Split(keysPart, string(t.key)) {
		off, err := strconv.Atoi(field)
		if err != nil || off < 0 {
			return nil, false
		}
		offsets = append(offsets, off)
	}

	values := []rune(valuesPart)
	delta = make(map[int]rune, len(offsets))
	for i, off := range offsets {
		if i >= len(values) {
			break
		}
		delta[off] = values[i]
	}
	return delta, true
}
