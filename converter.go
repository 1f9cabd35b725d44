package simpleserde

import "iter"

// Map is the canonical Simple representation: a mapping of field names to
// primitive or nested-primitive values, ready for JSON or YAML serialization.
type Map = map[string]any

// Converter converts Record values of type R to and from their Simple
// representation of type S, and persists that representation as JSON or
// YAML text.
//
// Both fields are optional. A Converter with only an Encoder can serialize
// but deterministically fails any decode attempt with ErrMissingDecoder.
// The fields may be reassigned directly after construction, though most
// callers never need to.
type Converter[R any, S any] struct {
	Encoder Encoder[R, S]
	Decoder Decoder[R, S]
}

// New returns a Converter using the given encoder and decoder. Either may
// be nil, disabling the corresponding direction.
//
// Use AsEncoderFunc and AsDecoderFunc to pass plain functions:
//
//	converter := simpleserde.New[Person, simpleserde.Map](
//		simpleserde.AsEncoderFunc(encodePerson),
//		simpleserde.AsDecoderFunc(decodePerson),
//	)
func New[R any, S any](encoder Encoder[R, S], decoder Decoder[R, S]) *Converter[R, S] {
	return &Converter[R, S]{
		Encoder: encoder,
		Decoder: decoder,
	}
}

// Encode converts a single record to its Simple representation.
//
// Encode is a pure function of its input given a fixed encoder and performs
// no I/O. It returns ErrMissingEncoder when no encoder is configured; any
// error from the encoder itself is returned unchanged.
func (c *Converter[R, S]) Encode(record R) (S, error) {
	if c.Encoder == nil {
		var zeroValue S
		return zeroValue, ErrMissingEncoder
	}

	return c.Encoder.Encode(record)
}

// Decode rebuilds a single record from its Simple representation.
//
// It returns ErrMissingDecoder when no decoder is configured; any error
// from the decoder itself is returned unchanged.
func (c *Converter[R, S]) Decode(simple S) (R, error) {
	if c.Decoder == nil {
		var zeroValue R
		return zeroValue, ErrMissingDecoder
	}

	return c.Decoder.Decode(simple)
}

// EncodeSeq lazily encodes a sequence of records, yielding one Simple value
// per input record in input order. The sequence is finite iff the input is
// finite, and single-use if the input is single-use.
//
// The first encoding error is yielded together with a zero value, after
// which the sequence stops.
func (c *Converter[R, S]) EncodeSeq(records iter.Seq[R]) iter.Seq2[S, error] {
	return func(yield func(S, error) bool) {
		for record := range records {
			simple, err := c.Encode(record)
			if err != nil {
				yield(simple, err)
				return
			}

			if !yield(simple, nil) {
				return
			}
		}
	}
}

// DecodeSeq lazily decodes a sequence of Simple values, yielding one record
// per input value in input order.
//
// A missing decoder surfaces as ErrMissingDecoder on the first element
// consumed, not when DecodeSeq is called.
func (c *Converter[R, S]) DecodeSeq(simples iter.Seq[S]) iter.Seq2[R, error] {
	return func(yield func(R, error) bool) {
		for simple := range simples {
			record, err := c.Decode(simple)
			if err != nil {
				yield(record, err)
				return
			}

			if !yield(record, nil) {
				return
			}
		}
	}
}

// EncodeSlice encodes every record in the slice, preserving order. The
// first encoding error aborts and is returned unchanged.
func (c *Converter[R, S]) EncodeSlice(records []R) ([]S, error) {
	simples := make([]S, 0, len(records))

	for _, record := range records {
		simple, err := c.Encode(record)
		if err != nil {
			return nil, err
		}

		simples = append(simples, simple)
	}

	return simples, nil
}

// DecodeSlice decodes every Simple value in the slice, preserving order.
// The first decoding error aborts and is returned unchanged.
func (c *Converter[R, S]) DecodeSlice(simples []S) ([]R, error) {
	records := make([]R, 0, len(simples))

	for _, simple := range simples {
		record, err := c.Decode(simple)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}

// Chain composes two Converters through a middle type M, typically a wire
// DTO sitting between a domain record and its Simple form. The composed
// Converter encodes R through M to S and decodes back the same way, and
// carries both directions only insofar as both stages do.
func Chain[R any, M any, S any](first *Converter[R, M], second *Converter[M, S]) *Converter[R, S] {
	return &Converter[R, S]{
		Encoder: EncoderFunc[R, S](func(record R) (S, error) {
			var zeroValue S

			mid, err := first.Encode(record)
			if err != nil {
				return zeroValue, err
			}

			return second.Encode(mid)
		}),
		Decoder: DecoderFunc[R, S](func(simple S) (R, error) {
			var zeroValue R

			mid, err := second.Decode(simple)
			if err != nil {
				return zeroValue, err
			}

			return first.Decode(mid)
		}),
	}
}
