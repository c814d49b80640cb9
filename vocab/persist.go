package vocab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// envelope is the on-disk vocabulary file: a training config block and
// the base -> preferred-form mapping, both under fixed top-level keys.
type envelope struct {
	Config json.RawMessage `json:"config"`
	Vocab  Vocab           `json:"vocab"`
}

// Save writes config and v to path as an indented JSON envelope
// {"config": ..., "vocab": ...}.
func Save(path string, config any, v Vocab) error {
	rawConfig, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal vocab config: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(envelope{Config: rawConfig, Vocab: v}); err != nil {
		return fmt.Errorf("marshal vocab file: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write vocab file: %w", err)
	}
	return nil
}

// Load reads the envelope at path, decodes the config block into
// config (a pointer to the codec's config type) and returns the
// vocabulary. A missing file, invalid JSON, or an envelope without
// both the "config" and "vocab" keys fails with a descriptive error;
// no codec should be constructed in that case.
func Load(path string, config any) (Vocab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocab file: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse vocab file %s: %w", path, err)
	}
	if len(env.Config) == 0 {
		return nil, fmt.Errorf("vocab file %s: missing %q key", path, "config")
	}
	if env.Vocab == nil {
		return nil, fmt.Errorf("vocab file %s: missing %q key", path, "vocab")
	}
	if err := json.Unmarshal(env.Config, config); err != nil {
		return nil, fmt.Errorf("vocab file %s: invalid config block: %w", path, err)
	}
	return env.Vocab, nil
}
