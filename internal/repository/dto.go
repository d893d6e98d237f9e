package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SchemaVersion is written into every envelope. Values without an envelope
// are read as version 0, the bare payload layout.
const SchemaVersion = 1

type envelope struct {
	V    int             `json:"v"`
	Data json.RawMessage `json:"data"`
}

func encode(payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(envelope{V: SchemaVersion, Data: data})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// unwrap returns the payload bytes of a stored value, accepting both the
// versioned envelope and the bare version-0 layout.
func unwrap(raw string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty value")
	}
	if trimmed[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return nil, err
		}
		v, hasV := probe["v"]
		data, hasData := probe["data"]
		if hasV && hasData && len(probe) == 2 {
			var version int
			if err := json.Unmarshal(v, &version); err != nil {
				return nil, fmt.Errorf("bad schema version: %w", err)
			}
			if version > SchemaVersion {
				return nil, fmt.Errorf("schema version %d is newer than supported version %d", version, SchemaVersion)
			}
			return data, nil
		}
	}
	return trimmed, nil
}

func decode(raw string, out interface{}) error {
	data, err := unwrap(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
