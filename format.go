package simpleserde

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies one of the supported text formats for persisted
// records.
type Format int

const (
	// FormatJSON serializes through encoding/json. Always available.
	FormatJSON Format = iota + 1

	// FormatYAML serializes through gopkg.in/yaml.v3. Available only in
	// binaries that import the yaml subpackage.
	FormatYAML
)

// String returns the lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Available reports whether a codec for the format is registered in this
// binary. The result is stable for the lifetime of the process, since
// codecs are registered during package initialization.
func (f Format) Available() bool {
	_, ok := codecs[f]
	return ok
}

// Codec serializes Simple values to text and parses them back. Marshal
// receives the indent width to honor in a codec-idiomatic way; Unmarshal
// parses into the value pointed to by v.
//
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any, indent int) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

var codecs = map[Format]Codec{
	FormatJSON: jsonCodec{},
}

// RegisterCodec installs the codec serving a format. It is intended to be
// called from an init function, the way the yaml subpackage registers
// itself; registration after initialization races with lookups.
func RegisterCodec(format Format, codec Codec) {
	codecs[format] = codec
}

func codecFor(format Format) (Codec, error) {
	codec, ok := codecs[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCodecUnavailable, format)
	}

	return codec, nil
}

// extensionFormats maps file extensions to formats for detection.
var extensionFormats = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

// DetectFormat guesses the format of a path from its file extension.
// It reports false when the extension is not recognized.
func DetectFormat(path string) (Format, bool) {
	format, ok := extensionFormats[strings.ToLower(filepath.Ext(path))]
	return format, ok
}
