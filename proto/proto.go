// Package proto builds simpleserde converters for Protobuf messages,
// using the canonical Protobuf JSON mapping as the bridge between a
// message and its Simple representation.
package proto

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	simpleserde "github.com/DonalChilde/pfmsoft-simple-serializer"
)

// NewEncoder returns an encoder function where the input message (T) gets
// converted into a Map following its Protobuf JSON mapping. Note that the
// mapping renders 64-bit integers as strings.
func NewEncoder[T proto.Message]() simpleserde.EncoderFunc[T, simpleserde.Map] {
	return func(record T) (simpleserde.Map, error) {
		data, err := protojson.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("proto.Encoder: failed to serialize message, %w", err)
		}

		var simple simpleserde.Map
		if err := json.Unmarshal(data, &simple); err != nil {
			return nil, fmt.Errorf("proto.Encoder: failed to convert message to map, %w", err)
		}

		return simple, nil
	}
}

// NewDecoder returns a decoder function where a Map is converted back into
// a destination message type (T) through its Protobuf JSON mapping.
//
// A message factory function is required for creating new instances of
// type `T` (especially if pointer semantics is used).
func NewDecoder[T proto.Message](factory func() T) simpleserde.DecoderFunc[T, simpleserde.Map] {
	return func(simple simpleserde.Map) (T, error) {
		var zeroValue T

		data, err := json.Marshal(simple)
		if err != nil {
			return zeroValue, fmt.Errorf("proto.Decoder: failed to convert map to json, %w", err)
		}

		model := factory()
		if err := protojson.Unmarshal(data, model); err != nil {
			return zeroValue, fmt.Errorf("proto.Decoder: failed to deserialize message, %w", err)
		}

		return model, nil
	}
}

// NewConverter returns a Converter between a Protobuf message type and its
// Map representation.
func NewConverter[T proto.Message](factory func() T) *simpleserde.Converter[T, simpleserde.Map] {
	return simpleserde.New[T, simpleserde.Map](
		NewEncoder[T](),
		NewDecoder(factory),
	)
}
