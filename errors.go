package simpleserde

import "errors"

// Conversion errors
var (
	// ErrInvalidKind is returned by the default struct encoder when the value
	// it receives is not a struct or a non-nil pointer to one.
	ErrInvalidKind = errors.New("simpleserde: value is not a struct record")

	// ErrMissingEncoder is returned by encode operations when the Converter
	// has no encoder configured.
	ErrMissingEncoder = errors.New("simpleserde: no encoder configured")

	// ErrMissingDecoder is returned by decode operations when the Converter
	// has no decoder configured.
	ErrMissingDecoder = errors.New("simpleserde: no decoder configured")

	// ErrMaxDepthExceeded is returned by the default struct encoder when a
	// record nests deeper than the supported limit, usually a sign of a
	// cyclic record.
	ErrMaxDepthExceeded = errors.New("simpleserde: record exceeds maximum nesting depth")
)

// File errors
var (
	// ErrPathExists is returned by save operations targeting an existing
	// file without the overwrite option.
	ErrPathExists = errors.New("simpleserde: path already exists")

	// ErrInvalidPath is returned by save operations targeting an existing
	// directory.
	ErrInvalidPath = errors.New("simpleserde: path is a directory")
)

// Format errors
var (
	// ErrCodecUnavailable is returned when an operation names a Format with
	// no codec registered in this binary. YAML support requires importing
	// the yaml subpackage.
	ErrCodecUnavailable = errors.New("simpleserde: no codec registered for format")
)
