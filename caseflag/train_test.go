package caseflag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainerSkipRules(t *testing.T) {
	t.Parallel()

	tr, err := NewTrainer(DefaultConfig())
	require.NoError(t, err)

	// Sentence-initial "Berlin" must not count, the mid-line ones do.
	tr.Add("Berlin is far from Berlin streets")
	tr.Add("we visited Berlin")
	// All-caps lines are skipped entirely.
	tr.Add("BERLIN BERLIN BERLIN")
	// Caseless tokens are never counted.
	tr.Add("the answer is 42 東京")

	v := tr.Vocab()
	assert.Equal(t, "Berlin", v.Get("berlin"))
	assert.Equal(t, "", v.Get("42"))
	assert.Equal(t, "", v.Get("東京"))
	// Lowercase-majority words produce no entry.
	assert.Equal(t, "", v.Get("is"))
}

func TestTrainerIncludeFlags(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.IncludeAllcaps = true
	cfg.IncludeSentInitial = true
	tr, err := NewTrainer(cfg)
	require.NoError(t, err)

	tr.Add("NATO summit")
	tr.Add("NATO talks")

	assert.Equal(t, "NATO", tr.Vocab().Get("nato"))
}

func TestTrainerMinCount(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.MinCount = 2
	tr, err := NewTrainer(cfg)
	require.NoError(t, err)

	tr.Add("he saw Praha once")
	tr.Add("then Praha again")
	tr.Add("and Brno once")

	v := tr.Vocab()
	assert.Equal(t, "Praha", v.Get("praha"))
	assert.Equal(t, "", v.Get("brno"))
}

func TestTrain(t *testing.T) {
	t.Parallel()

	corpus := strings.Join([]string{
		"we flew to Berlin yesterday",
		"trains to Berlin are fast",
		"the NATO summit met in Berlin",
	}, "\n")

	v, err := Train(strings.NewReader(corpus), DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "Berlin", v.Get("berlin"))
	assert.Equal(t, "NATO", v.Get("nato"))
}

func TestTrainedCodecRoundTrip(t *testing.T) {
	t.Parallel()

	tr, err := NewTrainer(DefaultConfig())
	require.NoError(t, err)
	for range 3 {
		tr.Add("we live in Berlin now")
	}
	c := tr.Codec()

	line := "Berlin is lovely , berlin is home ."
	enc := c.EncodeLine(line)
	assert.Equal(t, "berlin is lovely , ꔪ berlin is home .", enc)
	assert.Equal(t, line, c.DecodeLine(enc))
}

func TestTrainInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Flags.Lower = cfg.Flags.Upper
	_, err := Train(strings.NewReader("x"), cfg)
	require.Error(t, err)
}
