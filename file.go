package simpleserde

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// DefaultIndent is the pretty-printing width used when WithIndent is
	// not given.
	DefaultIndent = 1

	// DefaultFileMode is the permission mode for files created by save
	// operations when WithFileMode is not given.
	DefaultFileMode fs.FileMode = 0o644

	dirMode fs.FileMode = 0o755
)

// Option configures a single save or load operation.
type Option func(*fileOptions)

type fileOptions struct {
	format    Format
	indent    int
	overwrite bool
	fileMode  fs.FileMode
}

func applyOptions(opts []Option) fileOptions {
	cfg := fileOptions{
		indent:   DefaultIndent,
		fileMode: DefaultFileMode,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithFormat forces the text format instead of detecting it from the file
// extension. Honored by both save and load operations.
func WithFormat(format Format) Option {
	return func(cfg *fileOptions) {
		cfg.format = format
	}
}

// WithIndent sets the pretty-printing width passed through to the codec.
// Negative values are treated as zero. Load operations ignore it.
func WithIndent(indent int) Option {
	return func(cfg *fileOptions) {
		cfg.indent = max(indent, 0)
	}
}

// WithOverwrite allows a save operation to replace an existing file.
// Without it, saving over an existing file fails with ErrPathExists.
// Load operations ignore it.
func WithOverwrite() Option {
	return func(cfg *fileOptions) {
		cfg.overwrite = true
	}
}

// WithFileMode sets the permission mode for files created by a save
// operation. Load operations ignore it.
func WithFileMode(mode fs.FileMode) Option {
	return func(cfg *fileOptions) {
		cfg.fileMode = mode
	}
}

// SaveOne encodes a single record and writes it to path as one document.
//
// The format comes from WithFormat, else from the file extension, else
// JSON. Parent directories are created as needed. The write itself is one
// unit: if it fails partway the file is left in an undefined state, and no
// recovery is attempted.
func (c *Converter[R, S]) SaveOne(path string, record R, opts ...Option) error {
	cfg := applyOptions(opts)

	format := resolveFormat(path, cfg.format)
	codec, err := codecFor(format)
	if err != nil {
		return err
	}

	if err := checkPath(path, cfg.overwrite); err != nil {
		return err
	}

	if err := ensureParent(path); err != nil {
		return err
	}

	simple, err := c.Encode(record)
	if err != nil {
		return err
	}

	data, err := codec.Marshal(simple, cfg.indent)
	if err != nil {
		return fmt.Errorf("simpleserde: failed to marshal %s: %w", format, err)
	}

	return writeFile(path, data, cfg.fileMode)
}

// SaveMany encodes every record and writes them to path as one document
// holding a single array of simple values, in input order. Options behave
// as in SaveOne.
func (c *Converter[R, S]) SaveMany(path string, records []R, opts ...Option) error {
	cfg := applyOptions(opts)

	format := resolveFormat(path, cfg.format)
	codec, err := codecFor(format)
	if err != nil {
		return err
	}

	if err := checkPath(path, cfg.overwrite); err != nil {
		return err
	}

	if err := ensureParent(path); err != nil {
		return err
	}

	simples, err := c.EncodeSlice(records)
	if err != nil {
		return err
	}

	data, err := codec.Marshal(simples, cfg.indent)
	if err != nil {
		return fmt.Errorf("simpleserde: failed to marshal %s: %w", format, err)
	}

	return writeFile(path, data, cfg.fileMode)
}

// LoadOne reads a single-document file from path, parses it into the
// Simple representation and decodes the record.
//
// It fails with ErrMissingDecoder before touching the filesystem when no
// decoder is configured. Decoder errors are returned unchanged.
func (c *Converter[R, S]) LoadOne(path string, opts ...Option) (R, error) {
	var zeroValue R

	if c.Decoder == nil {
		return zeroValue, ErrMissingDecoder
	}

	cfg := applyOptions(opts)

	format := resolveFormat(path, cfg.format)
	codec, err := codecFor(format)
	if err != nil {
		return zeroValue, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return zeroValue, fmt.Errorf("simpleserde: failed to read %s: %w", path, err)
	}

	var simple S
	if err := codec.Unmarshal(data, &simple); err != nil {
		return zeroValue, fmt.Errorf("simpleserde: failed to parse %s as %s: %w", path, format, err)
	}

	return c.Decode(simple)
}

// LoadMany reads a file holding an array of simple values from path and
// decodes each element in order, returning the materialized records.
//
// It fails with ErrMissingDecoder before touching the filesystem when no
// decoder is configured. Decoder errors are returned unchanged.
func (c *Converter[R, S]) LoadMany(path string, opts ...Option) ([]R, error) {
	if c.Decoder == nil {
		return nil, ErrMissingDecoder
	}

	cfg := applyOptions(opts)

	format := resolveFormat(path, cfg.format)
	codec, err := codecFor(format)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("simpleserde: failed to read %s: %w", path, err)
	}

	var simples []S
	if err := codec.Unmarshal(data, &simples); err != nil {
		return nil, fmt.Errorf("simpleserde: failed to parse %s as %s: %w", path, format, err)
	}

	return c.DecodeSlice(simples)
}

func resolveFormat(path string, explicit Format) Format {
	if explicit != 0 {
		return explicit
	}

	if format, ok := DetectFormat(path); ok {
		return format
	}

	return FormatJSON
}

// checkPath is the overwrite-safety check shared by all save operations:
// an existing directory is never a valid target, and an existing file is
// only replaced when overwrite is set.
func checkPath(path string, overwrite bool) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("simpleserde: failed to stat %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	if !overwrite {
		return fmt.Errorf("%w: %s", ErrPathExists, path)
	}

	return nil
}

func ensureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("simpleserde: failed to create parent directory of %s: %w", path, err)
	}

	return nil
}

func writeFile(path string, data []byte, mode fs.FileMode) error {
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("simpleserde: failed to write %s: %w", path, err)
	}

	return nil
}
