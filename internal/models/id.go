package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque record identifier. Records written by older admin screens
// stored ids as JSON numbers, so both numbers and strings decode.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("invalid id %s: %w", b, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Cursor is an opaque paging position. The server hands it out as a JSON
// object (older deployments sent it pre-encoded as a string); either form
// is kept as raw JSON text and sent back unchanged in the last_key query.
type Cursor string

func (c *Cursor) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Cursor(s)
		return nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return fmt.Errorf("invalid cursor %s: %w", b, err)
	}
	*c = Cursor(buf.String())
	return nil
}

func (c Cursor) MarshalJSON() ([]byte, error) {
	b := []byte(c)
	if len(b) > 0 && (b[0] == '{' || b[0] == '[') && json.Valid(b) {
		return b, nil
	}
	return json.Marshal(string(c))
}

func (c Cursor) String() string { return string(c) }
