package document

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeFragments decodes the document's opaque fragment payload into a
// caller-supplied struct. Field names resolve through `json` tags, and
// scalar types are converted weakly (the service serializes numbers
// inconsistently across fragment kinds).
func (d *Document) DecodeFragments(out any) error {
	if d.Data == nil {
		return fmt.Errorf("document %s has no fragment payload", d.ID)
	}

	// Round-trip through a generic map so mapstructure can walk it.
	raw, err := json.Marshal(d.Data)
	if err != nil {
		return fmt.Errorf("failed to re-encode fragment payload: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("failed to decode fragment payload: %w", err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build fragment decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return fmt.Errorf("failed to decode fragments for document %s: %w", d.ID, err)
	}
	return nil
}
