package simpleserde

import (
	"encoding/json"
	"strings"
)

// jsonCodec is the built-in Codec over encoding/json. It is registered for
// FormatJSON unconditionally: JSON support has no extra dependency.
type jsonCodec struct{}

// Marshal serializes v to JSON. A positive indent pretty-prints with that
// many spaces per level; zero produces compact output.
func (jsonCodec) Marshal(v any, indent int) ([]byte, error) {
	if indent > 0 {
		return json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	}

	return json.Marshal(v)
}

// Unmarshal parses JSON data into the value pointed to by v.
func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
