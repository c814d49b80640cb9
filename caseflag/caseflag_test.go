package caseflag

import (
	"testing"

	"github.com/Kiryukhasemenov/InFlags/vocab"
)

// testCodec builds a codec over a small fixed vocabulary with one
// preferred form per casing shape.
func testCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := New(vocab.Vocab{
		"berlin": "Berlin",
		"nato":   "NATO",
		"iphone": "iPhone",
	}, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
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
		{"reference example", "i live in berlin .", "ꔪ i live in ꔪ berlin ."},
		{"default capitalization elided", "Hello world .", "hello world ."},
		{"upper and vocab upper", "THE NATO summit", "ꔅ the nato summit"},
		{"mixed case passes through", "McDonald opened", "McDonald opened"},
		{"single letter upper", "I am here", "ꔅ i am here"},
		{"title mid-line", "hello World", "ꔪ hello ꔆ world"},
		{"vocab mismatch first upper", "BERLIN is big", "ꔅ berlin is big"},
		{"vocab mismatch first lower", "berlin is big", "ꔪ berlin is big"},
		{"vocab match first", "Berlin is big", "berlin is big"},
		{"allcaps line", "THE END .", "ꔫ the end ."},
		{"allcaps single word stays per-token", "SINGLEWORD", "ꔅ singleword"},
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
		{"flags applied", "ꔪ i live in ꔪ berlin .", "i live in berlin ."},
		{"defaults applied", "i live in berlin .", "I live in Berlin ."},
		{"vocab forms win without flags", "nato berlin city", "NATO Berlin city"},
		{"lower flag beats default", "ꔪ nato berlin city", "nato Berlin city"},
		{"allcaps prefix", "ꔫ the end .", "THE END ."},
		{"dangling flag dropped", "hello ꔆ", "Hello"},
		{"lone flag", "ꔆ", ""},
		{"upper flag", "ꔅ the ꔅ nato summit", "THE NATO summit"},
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

// TestEncodeTokenMatrix pins every (isFirst, shape, vocab-presence)
// combination, including the vocabulary-mismatch fallthroughs.
func TestEncodeTokenMatrix(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	tests := []struct {
		token   string
		isFirst bool
		want    string
	}{
		// Vocab prefers Title ("Berlin").
		{"berlin", true, "ꔪ berlin"},
		{"Berlin", true, "berlin"},
		{"BERLIN", true, "ꔅ berlin"},
		{"bErLiN", true, "bErLiN"},
		{"berlin", false, "ꔪ berlin"},
		{"Berlin", false, "berlin"},
		{"BERLIN", false, "ꔅ berlin"},
		{"bErLiN", false, "bErLiN"},
		// Vocab prefers UPPER ("NATO").
		{"nato", true, "ꔪ nato"},
		{"Nato", true, "ꔆ nato"},
		{"NATO", true, "nato"},
		{"nAtO", true, "nAtO"},
		{"nato", false, "ꔪ nato"},
		{"Nato", false, "ꔆ nato"},
		{"NATO", false, "nato"},
		// Vocab prefers mixed case ("iPhone").
		{"iphone", true, "ꔪ iphone"},
		{"iPhone", true, "iphone"},
		{"IPHONE", true, "ꔅ iphone"},
		{"Iphone", true, "ꔆ iphone"},
		{"iphone", false, "ꔪ iphone"},
		{"iPhone", false, "iphone"},
		// No vocab entry.
		{"city", true, "ꔪ city"},
		{"City", true, "city"},
		{"CITY", true, "ꔅ city"},
		{"cItY", true, "cItY"},
		{"city", false, "city"},
		{"City", false, "ꔆ city"},
		{"CITY", false, "ꔅ city"},
		{"cItY", false, "cItY"},
		// Single letters and caseless tokens.
		{"i", true, "ꔪ i"},
		{"I", true, "ꔅ i"},
		{"i", false, "i"},
		{"I", false, "ꔅ i"},
		{"42", true, "42"},
		{"42", false, "42"},
		{"東京", true, "東京"},
		{"東京", false, "東京"},
	}

	for _, tt := range tests {
		if got := c.encodeToken(tt.token, tt.isFirst); got != tt.want {
			t.Errorf("encodeToken(%q, isFirst=%v) = %q, want %q",
				tt.token, tt.isFirst, got, tt.want)
		}
	}
}

func TestNaiveMode(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase untouched", "city stays", "city stays"},
		{"title flagged", "City opens", "ꔆ city opens"},
		{"upper flagged", "CITY opens", "ꔅ city opens"},
		{"vocab ignored", "NATO Berlin", "ꔅ nato ꔆ berlin"},
		{"mixed passes", "cItY", "cItY"},
		{"single upper letter", "I am", "ꔅ i am"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := c.EncodeLineNaive(tt.input)
			if got != tt.want {
				t.Errorf("EncodeLineNaive(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if back := c.DecodeLineNaive(got); back != tt.input {
				t.Errorf("DecodeLineNaive(%q) = %q, want %q", got, back, tt.input)
			}
		})
	}
}

func TestNaiveFavorTitle(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	c.FavorTitle = true
	if got := c.EncodeLineNaive("I am"); got != "ꔆ i am" {
		t.Errorf("EncodeLineNaive(%q) = %q, want %q", "I am", got, "ꔆ i am")
	}
	// Multi-letter uppercase words keep the UPPER flag.
	if got := c.EncodeLineNaive("AB cd"); got != "ꔅ ab cd" {
		t.Errorf("EncodeLineNaive(%q) = %q, want %q", "AB cd", got, "ꔅ ab cd")
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	lines := []string{
		"i live in berlin .",
		"Hello world .",
		"THE NATO summit",
		"I am here",
		"hello World",
		"BERLIN is big",
		"berlin is big",
		"Berlin is big",
		"THE END .",
		"iPhone sales , IPHONE hype",
		"",
		"   ",
		"42 degrees",
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
	text := "i live in berlin .\nHello world ."
	enc := c.EncodeText(text)
	want := "ꔪ i live in ꔪ berlin .\nhello world ."
	if enc != want {
		t.Errorf("EncodeText = %q, want %q", enc, want)
	}
	if got := c.DecodeText(enc); got != text {
		t.Errorf("DecodeText(%q) = %q, want %q", enc, got, text)
	}
}

func TestConfigValidation(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Flags.Upper = "xy"
	if _, err := New(vocab.Vocab{}, cfg); err == nil {
		t.Error("multi-rune flag accepted")
	}

	cfg = DefaultConfig()
	cfg.Flags.Title = cfg.Flags.Upper
	if _, err := New(vocab.Vocab{}, cfg); err == nil {
		t.Error("duplicate flags accepted")
	}
}
