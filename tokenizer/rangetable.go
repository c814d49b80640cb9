package tokenizer

import (
	"sort"
	"unicode"
)

// RuneTable builds a RangeTable covering exactly the given runes, for
// passing reserved flag glyphs to New. Adjacent runes are merged into
// one range; duplicates are ignored.
func RuneTable(runes ...rune) *unicode.RangeTable {
	if len(runes) == 0 {
		return &unicode.RangeTable{}
	}
	sorted := append([]rune(nil), runes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var rt unicode.RangeTable
	lo, hi := sorted[0], sorted[0]
	flush := func() {
		if hi <= 0xFFFF {
			rt.R16 = append(rt.R16, unicode.Range16{Lo: uint16(lo), Hi: uint16(hi), Stride: 1})
			return
		}
		if lo <= 0xFFFF {
			// Range straddles the 16-bit boundary; split it.
			rt.R16 = append(rt.R16, unicode.Range16{Lo: uint16(lo), Hi: 0xFFFF, Stride: 1})
			lo = 0x10000
		}
		rt.R32 = append(rt.R32, unicode.Range32{Lo: uint32(lo), Hi: uint32(hi), Stride: 1})
	}
	for _, r := range sorted[1:] {
		if r == hi || r == hi+1 {
			hi = r
			continue
		}
		flush()
		lo, hi = r, r
	}
	flush()
	return &rt
}
