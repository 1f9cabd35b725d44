// Package serdetest provides a reusable conformance suite verifying the
// properties every well-formed simpleserde.Converter should satisfy:
// round-trips through memory, sequences and files, and the overwrite
// guard on save operations.
package serdetest

import (
	"path/filepath"
	"slices"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	simpleserde "github.com/DonalChilde/pfmsoft-simple-serializer"
)

// formats lists every format the file round-trip is attempted with.
// Formats without a registered codec are skipped, so the suite passes in
// binaries that do not import the yaml subpackage.
var formats = []simpleserde.Format{
	simpleserde.FormatJSON,
	simpleserde.FormatYAML,
}

// ConverterSuite is a full testing suite for a simpleserde.Converter
// holding both an encoder and a decoder.
type ConverterSuite[R any, S any] struct {
	suite.Suite

	converterFactory func() *simpleserde.Converter[R, S]
	records          []R

	converter *simpleserde.Converter[R, S] // NOTE: this instance is initialized in SetupTest.
}

// NewConverterSuite creates a new Converter testing suite using the
// provided factory and a non-empty set of representative records. The
// records must round-trip structurally: decode(encode(r)) == r.
func NewConverterSuite[R any, S any](
	factory func() *simpleserde.Converter[R, S],
	records ...R,
) *ConverterSuite[R, S] {
	cs := new(ConverterSuite[R, S])
	cs.converterFactory = factory
	cs.records = records

	return cs
}

// SetupTest creates a new, fresh Converter instance for each test in the suite.
func (cs *ConverterSuite[R, S]) SetupTest() {
	cs.Require().NotEmpty(cs.records, "the suite needs at least one representative record")
	cs.converter = cs.converterFactory()
}

// TestRoundTrip checks that every representative record survives a single
// encode and decode unchanged.
func (cs *ConverterSuite[R, S]) TestRoundTrip() {
	t := cs.T()

	for _, record := range cs.records {
		simple, err := cs.converter.Encode(record)
		if !assert.NoError(t, err) {
			continue
		}

		decoded, err := cs.converter.Decode(simple)
		if !assert.NoError(t, err) {
			continue
		}

		assert.Equal(t, record, decoded)
	}
}

// TestSliceRoundTrip checks that the whole record set survives the slice
// operations unchanged and in order.
func (cs *ConverterSuite[R, S]) TestSliceRoundTrip() {
	t := cs.T()

	simples, err := cs.converter.EncodeSlice(cs.records)
	require.NoError(t, err)
	require.Len(t, simples, len(cs.records))

	records, err := cs.converter.DecodeSlice(simples)
	require.NoError(t, err)

	assert.Equal(t, cs.records, records)
}

// TestSeqRoundTrip checks that the lazy sequence operations preserve both
// content and order.
func (cs *ConverterSuite[R, S]) TestSeqRoundTrip() {
	t := cs.T()

	simples := make([]S, 0, len(cs.records))

	for simple, err := range cs.converter.EncodeSeq(slices.Values(cs.records)) {
		if !assert.NoError(t, err) {
			return
		}

		simples = append(simples, simple)
	}

	records := make([]R, 0, len(simples))

	for record, err := range cs.converter.DecodeSeq(slices.Values(simples)) {
		if !assert.NoError(t, err) {
			return
		}

		records = append(records, record)
	}

	assert.Equal(t, cs.records, records)
}

// TestFileRoundTrip checks persistence through every format with a
// registered codec, one record per file and the whole set per file.
func (cs *ConverterSuite[R, S]) TestFileRoundTrip() {
	for _, format := range formats {
		if !format.Available() {
			continue
		}

		cs.Run(format.String(), func() {
			t := cs.T()
			dir := t.TempDir()

			path := filepath.Join(dir, "record."+format.String())
			require.NoError(t, cs.converter.SaveOne(path, cs.records[0]))

			loaded, err := cs.converter.LoadOne(path)
			require.NoError(t, err)
			assert.Equal(t, cs.records[0], loaded)

			manyPath := filepath.Join(dir, "records."+format.String())
			require.NoError(t, cs.converter.SaveMany(manyPath, cs.records))

			loadedMany, err := cs.converter.LoadMany(manyPath)
			require.NoError(t, err)
			assert.Equal(t, cs.records, loadedMany)
		})
	}
}

// TestOverwriteGuard checks that saving over an existing file fails
// without the overwrite option and succeeds with it.
func (cs *ConverterSuite[R, S]) TestOverwriteGuard() {
	t := cs.T()

	path := filepath.Join(t.TempDir(), "record.json")

	require.NoError(t, cs.converter.SaveOne(path, cs.records[0]))

	err := cs.converter.SaveOne(path, cs.records[0])
	assert.ErrorIs(t, err, simpleserde.ErrPathExists)

	assert.NoError(t, cs.converter.SaveOne(path, cs.records[0], simpleserde.WithOverwrite()))
}
