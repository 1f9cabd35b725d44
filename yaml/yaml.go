// Package yaml registers the YAML codec with the parent simpleserde
// package.
//
// YAML support is an opt-in capability: binaries that never import this
// package carry no YAML dependency, and simpleserde operations using
// FormatYAML fail with ErrCodecUnavailable. A blank import is enough to
// enable it:
//
//	import _ "github.com/DonalChilde/pfmsoft-simple-serializer/yaml"
package yaml

import (
	"bytes"

	"gopkg.in/yaml.v3"

	simpleserde "github.com/DonalChilde/pfmsoft-simple-serializer"
)

func init() {
	simpleserde.RegisterCodec(simpleserde.FormatYAML, Codec{})
}

// Codec implements simpleserde.Codec over gopkg.in/yaml.v3.
type Codec struct{}

// Marshal serializes v to a single YAML document. A positive indent sets
// the number of spaces per indentation level; zero keeps the library
// default.
func (Codec) Marshal(v any, indent int) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	if indent > 0 {
		enc.SetIndent(indent)
	}

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal parses YAML data into the value pointed to by v.
func (Codec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
