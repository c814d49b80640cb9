package diaflag

import (
	"testing"

	"github.com/Kiryukhasemenov/InFlags/vocab"
)

// testCodec builds a codec with the default Czech diacritics over a
// small fixed vocabulary. Flag glyphs follow list order: acute Ⓐ,
// caron Ⓑ, ring Ⓒ.
func testCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := New(vocab.Vocab{
		"cerny": "černý",
		"kun":   "kůň",
		"uzky":  "úzký",
	}, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestDediacritize(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"černý", "cerny"},
		{"kůň", "kun"},
		{"žluťoučký", "zlutoucky"},
		{"plain", "plain"},
		// Marks outside the configured set stay.
		{"ökonom", "ökonom"},
		{"señor", "señor"},
	}
	for _, tt := range tests {
		if got := c.Dediacritize(tt.input); got != tt.want {
			t.Errorf("Dediacritize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	tests := []struct {
		input string
		want  map[int]rune
	}{
		{"cerny", map[int]rune{}},
		{"černý", map[int]rune{0: 'Ⓑ', 4: 'Ⓐ'}},
		{"kůň", map[int]rune{1: 'Ⓒ', 2: 'Ⓑ'}},
		// Unconfigured marks are invisible.
		{"señor", map[int]rune{}},
	}
	for _, tt := range tests {
		got := c.marks.detect(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("detect(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for off, flag := range tt.want {
			if got[off] != flag {
				t.Errorf("detect(%q)[%d] = %q, want %q", tt.input, off, got[off], flag)
			}
		}
	}
}

func TestEncodeLine(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"vocab match elided", "černý", "cerny"},
		{"bare where prediction marks", "cerny", "ꕑ0ꕐ4ꕑ⓿⓿ cerny"},
		{"extra mark over prediction", "čérný", "ꕑ1ꕑⒶ cerny"},
		{"missing one predicted mark", "kuň", "ꕑ1ꕑ⓿ kun"},
		{"wrong mark plus missing", "ůzky", "ꕑ0ꕐ3ꕑⒸ⓿ uzky"},
		{"unknown word with marks", "úpěl", "ꕑ0ꕐ2ꕑⒶⒷ upel"},
		{"unknown bare word elided", "upel", "upel"},
		{"sentence", "černý kůň úpěl .", "cerny kun ꕑ0ꕐ2ꕑⒶⒷ upel ."},
		{"separators only", " .. ", " .. "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := c.EncodeLine(tt.input); got != tt.want {
				t.Errorf("EncodeLine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeLine(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"vocab prediction applied", "cerny kun", "černý kůň"},
		{"bare flags suppress prediction", "ꕑ0ꕐ4ꕑ⓿⓿ cerny", "cerny"},
		{"delta overlays prediction", "ꕑ1ꕑⒶ cerny", "čérný"},
		{"partial bare", "ꕑ1ꕑ⓿ kun", "kuň"},
		{"override plus bare", "ꕑ0ꕐ3ꕑⒸ⓿ uzky", "ůzky"},
		{"unknown word delta", "ꕑ0ꕐ2ꕑⒶⒷ upel", "úpěl"},
		{"oov leaves position bare", "ꕑ0ꕑ⓪ cerny", "cerný"},
		{"dangling flag dropped", "cerny ꕑ0ꕑⒶ", "černý"},
		{"malformed flag dropped", "ꕑoopsꕑⒶ cerny", "černý"},
		{"offset past end ignored", "ꕑ9ꕑⒶ kun", "kůň"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := c.DecodeLine(tt.input); got != tt.want {
				t.Errorf("DecodeLine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEncodeLineNormalizesInput(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	// "černý" spelled with combining marks instead of composed runes.
	decomposed := "c\u030Cerny\u0301"
	// After NFC normalization it is the vocabulary's preferred form.
	if got := c.EncodeLine(decomposed); got != "cerny" {
		t.Errorf("EncodeLine(%q) = %q, want %q", decomposed, got, "cerny")
	}
	// Acute on the wrong character: a delta is needed even though the
	// base is in the vocabulary.
	if got := c.EncodeLine("čerńy"); got != "ꕑ3ꕐ4ꕑⒶ⓿ cerny" {
		t.Errorf("EncodeLine(%q) = %q", "čerńy", got)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	lines := []string{
		"žluťoučký kůň úpěl ďábelské ódy .",
		"černý kůň",
		"cerny kun",
		"čérný",
		"kuň , kůň a kun",
		"no diacritics here",
		"",
		"   ",
		"42 stupňů",
	}
	for _, line := range lines {
		enc := c.EncodeLine(line)
		if got := c.DecodeLine(enc); got != line {
			t.Errorf("round trip broken:\ninput:   %q\nencoded: %q\ndecoded: %q", line, enc, got)
		}
	}
}

func TestEncodeDecodeText(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	text := "černý kůň\ncerny kun"
	enc := c.EncodeText(text)
	want := "cerny kun\nꕑ0ꕐ4ꕑ⓿⓿ cerny ꕑ1ꕐ2ꕑ⓿⓿ kun"
	if enc != want {
		t.Errorf("EncodeText = %q, want %q", enc, want)
	}
	if got := c.DecodeText(enc); got != text {
		t.Errorf("DecodeText(%q) = %q, want %q", enc, got, text)
	}
}

func TestFormatParseDelta(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	m := c.marks

	delta := map[int]rune{4: 'Ⓐ', 0: 'Ⓑ', 2: '⓿'}
	token := m.formatDelta(delta)
	if token != "ꕑ0ꕐ2ꕐ4ꕑⒷ⓿Ⓐ" {
		t.Fatalf("formatDelta = %q", token)
	}
	back, ok := m.parseDelta(token)
	if !ok {
		t.Fatal("parseDelta rejected its own output")
	}
	if len(back) != len(delta) {
		t.Fatalf("parseDelta = %v, want %v", back, delta)
	}
	for off, flag := range delta {
		if back[off] != flag {
			t.Errorf("parseDelta[%d] = %q, want %q", off, back[off], flag)
		}
	}
}

func TestParseDeltaMalformed(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	m := c.marks
	tests := []struct {
		name  string
		token string
	}{
		{"no dict prefix", "0ꕑⒶ"},
		{"no second dict", "ꕑ0Ⓐ"},
		{"non-numeric offset", "ꕑxꕑⒶ"},
		{"negative offset", "ꕑ-1ꕑⒶ"},
		{"empty body", "ꕑ"},
	}
	for _, tt := range tests {
		if _, ok := m.parseDelta(tt.token); ok {
			t.Errorf("parseDelta(%q) accepted (%s)", tt.token, tt.name)
		}
	}

	// More offsets than values: pair up to the shorter side.
	delta, ok := m.parseDelta("ꕑ0ꕐ4ꕑⒶ")
	if !ok || len(delta) != 1 || delta[0] != 'Ⓐ' {
		t.Errorf("parseDelta(%q) = %v, %v", "ꕑ0ꕐ4ꕑⒶ", delta, ok)
	}
}

func TestConfigValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown mark name", func(c *Config) {
			c.Diacritics = []string{"COMBINING NONSUCH"}
		}},
		{"duplicate mark name", func(c *Config) {
			c.Diacritics = []string{"COMBINING CARON", "COMBINING CARON"}
		}},
		{"empty diacritics", func(c *Config) { c.Diacritics = nil }},
		{"too many diacritics", func(c *Config) {
			c.Diacritics = make([]string, maxDiacritics+1)
			for i := range c.Diacritics {
				c.Diacritics[i] = "COMBINING CARON"
			}
		}},
		{"unsupported order mode", func(c *Config) { c.OrderMode = "alpha" }},
		{"multi-rune glyph", func(c *Config) { c.KeyFlag = "xy" }},
		{"duplicate glyphs", func(c *Config) { c.BareFlag = c.OOVFlag }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := New(vocab.Vocab{}, cfg); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}
