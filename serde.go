package simpleserde

// Encoder converts a Record type into its Simple representation.
type Encoder[R any, S any] interface {
	Encode(record R) (S, error)
}

// EncoderFunc is a functional implementation of the Encoder interface.
type EncoderFunc[R any, S any] func(record R) (S, error)

// Encode implements the Encoder interface.
func (fn EncoderFunc[R, S]) Encode(record R) (S, error) { return fn(record) }

// AsEncoderFunc casts the given encoding function into a compatible
// Encoder interface type.
func AsEncoderFunc[R, S any](f func(record R) (S, error)) EncoderFunc[R, S] {
	return EncoderFunc[R, S](f)
}

// AsInfallibleEncoderFunc casts the given infallible encoding function
// into a compatible Encoder interface type.
func AsInfallibleEncoderFunc[R, S any](f func(record R) S) EncoderFunc[R, S] {
	return EncoderFunc[R, S](func(record R) (S, error) {
		return f(record), nil
	})
}

// Decoder rebuilds a Record type from its Simple representation.
type Decoder[R any, S any] interface {
	Decode(simple S) (R, error)
}

// DecoderFunc is a functional implementation of the Decoder interface.
type DecoderFunc[R any, S any] func(simple S) (R, error)

// Decode implements the Decoder interface.
func (fn DecoderFunc[R, S]) Decode(simple S) (R, error) { return fn(simple) }

// AsDecoderFunc casts the given decoding function into a compatible
// Decoder interface type.
func AsDecoderFunc[R, S any](f func(simple S) (R, error)) DecoderFunc[R, S] {
	return DecoderFunc[R, S](f)
}

// AsInfallibleDecoderFunc casts the given infallible decoding function
// into a compatible Decoder interface type.
func AsInfallibleDecoderFunc[R, S any](f func(simple S) R) DecoderFunc[R, S] {
	return DecoderFunc[R, S](func(simple S) (R, error) {
		return f(simple), nil
	})
}
