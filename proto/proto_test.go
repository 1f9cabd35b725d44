package proto_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	simpleserde "github.com/DonalChilde/pfmsoft-simple-serializer"
	"github.com/DonalChilde/pfmsoft-simple-serializer/proto"
)

func TestConverter(t *testing.T) {
	converter := proto.NewConverter(func() *structpb.Struct { return &structpb.Struct{} })

	t.Run("it encodes a message into its json mapping", func(t *testing.T) {
		msg, err := structpb.NewStruct(map[string]any{
			"name":  "bob",
			"items": []any{"chair", "table"},
		})
		require.NoError(t, err)

		simple, err := converter.Encode(msg)
		require.NoError(t, err)

		assert.Equal(t, simpleserde.Map{
			"name":  "bob",
			"items": []any{"chair", "table"},
		}, simple)
	})

	t.Run("it round-trips through the mapping", func(t *testing.T) {
		msg, err := structpb.NewStruct(map[string]any{
			"name":   "bob",
			"rating": 4.5,
		})
		require.NoError(t, err)

		simple, err := converter.Encode(msg)
		require.NoError(t, err)

		decoded, err := converter.Decode(simple)
		require.NoError(t, err)

		assert.Equal(t, msg.AsMap(), decoded.AsMap())
	})

	t.Run("it fails when the mapping cannot be marshaled", func(t *testing.T) {
		_, err := converter.Decode(simpleserde.Map{
			"bad": make(chan int),
		})

		assert.ErrorContains(t, err, "failed to convert map to json")
	})

	t.Run("it fails when the mapping does not match the message", func(t *testing.T) {
		// A ListValue deserializes from a JSON array, never from an object.
		lists := proto.NewConverter(func() *structpb.ListValue { return &structpb.ListValue{} })

		_, err := lists.Decode(simpleserde.Map{"not": "a list"})
		assert.ErrorContains(t, err, "failed to deserialize message")
	})
}

func TestFilePersistence(t *testing.T) {
	converter := proto.NewConverter(func() *structpb.Struct { return &structpb.Struct{} })

	msg, err := structpb.NewStruct(map[string]any{"name": "bob"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "record.json")

	require.NoError(t, converter.SaveOne(path, msg))

	loaded, err := converter.LoadOne(path)
	require.NoError(t, err)
	assert.Equal(t, msg.AsMap(), loaded.AsMap())
}
