package simpleserde_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	simpleserde "github.com/DonalChilde/pfmsoft-simple-serializer"
	"github.com/DonalChilde/pfmsoft-simple-serializer/internal/person"
)

func TestStructEncoder(t *testing.T) {
	t.Run("it encodes a record into a map of its fields", func(t *testing.T) {
		encode := simpleserde.StructEncoder[person.Person]()

		simple, err := encode(person.Person{Name: "bob", Items: []string{"chair", "table"}})
		require.NoError(t, err)

		assert.Equal(t, simpleserde.Map{
			"name":  "bob",
			"items": []any{"chair", "table"},
		}, simple)
	})

	t.Run("it follows json tags and skips ignored fields", func(t *testing.T) {
		type tagged struct {
			Renamed  string `json:"other_name"`
			Optional string `json:"optional,omitempty"`
			Hidden   string `json:"-"`
			Plain    string
		}

		encode := simpleserde.StructEncoder[tagged]()

		simple, err := encode(tagged{
			Renamed:  "r",
			Optional: "o",
			Hidden:   "h",
			Plain:    "p",
		})
		require.NoError(t, err)

		assert.Equal(t, simpleserde.Map{
			"other_name": "r",
			"optional":   "o",
			"Plain":      "p",
		}, simple)
	})

	t.Run("it skips unexported fields", func(t *testing.T) {
		type mixed struct {
			Public string `json:"public"`
			secret string
		}

		encode := simpleserde.StructEncoder[mixed]()

		simple, err := encode(mixed{Public: "yes", secret: "no"})
		require.NoError(t, err)

		assert.Equal(t, simpleserde.Map{"public": "yes"}, simple)
	})

	t.Run("it flattens embedded structs with direct fields winning", func(t *testing.T) {
		type base struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		}

		type widget struct {
			base

			Kind string `json:"kind"`
			Name string `json:"name"`
		}

		encode := simpleserde.StructEncoder[widget]()

		simple, err := encode(widget{
			base: base{ID: "w-1", Kind: "base"},
			Kind: "widget",
			Name: "gear",
		})
		require.NoError(t, err)

		assert.Equal(t, simpleserde.Map{
			"id":   "w-1",
			"kind": "widget",
			"name": "gear",
		}, simple)
	})

	t.Run("it flattens pointer-embedded structs", func(t *testing.T) {
		type meta struct {
			Origin string `json:"origin"`
		}

		type parcel struct {
			*meta

			Weight int `json:"weight"`
		}

		encode := simpleserde.StructEncoder[parcel]()

		simple, err := encode(parcel{meta: &meta{Origin: "warehouse"}, Weight: 3})
		require.NoError(t, err)

		assert.Equal(t, simpleserde.Map{
			"origin": "warehouse",
			"weight": 3,
		}, simple)
	})

	t.Run("it encodes nested structs recursively", func(t *testing.T) {
		type address struct {
			Street string `json:"street"`
			City   string `json:"city"`
		}

		type contact struct {
			Name string  `json:"name"`
			Home address `json:"home"`
		}

		encode := simpleserde.StructEncoder[contact]()

		simple, err := encode(contact{
			Name: "bob",
			Home: address{Street: "main st", City: "springfield"},
		})
		require.NoError(t, err)

		assert.Equal(t, simpleserde.Map{
			"name": "bob",
			"home": simpleserde.Map{
				"street": "main st",
				"city":   "springfield",
			},
		}, simple)
	})

	t.Run("it reduces text-marshaling values to strings", func(t *testing.T) {
		type stamped struct {
			ID uuid.UUID `json:"id"`
			At time.Time `json:"at"`
		}

		id := uuid.MustParse("26d682f9-ad2d-4280-b48c-d38a61b6b515")
		at := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

		encode := simpleserde.StructEncoder[stamped]()

		simple, err := encode(stamped{ID: id, At: at})
		require.NoError(t, err)

		assert.Equal(t, simpleserde.Map{
			"id": "26d682f9-ad2d-4280-b48c-d38a61b6b515",
			"at": "2024-03-01T09:30:00Z",
		}, simple)
	})

	t.Run("it stringifies non-string map keys", func(t *testing.T) {
		type scores struct {
			ByLevel map[int]string `json:"by_level"`
		}

		encode := simpleserde.StructEncoder[scores]()

		simple, err := encode(scores{ByLevel: map[int]string{1: "low", 2: "high"}})
		require.NoError(t, err)

		assert.Equal(t, simpleserde.Map{
			"by_level": simpleserde.Map{"1": "low", "2": "high"},
		}, simple)
	})

	t.Run("it keeps nil slices and maps as nil", func(t *testing.T) {
		encode := simpleserde.StructEncoder[person.Person]()

		simple, err := encode(person.Person{Name: "bob"})
		require.NoError(t, err)

		assert.Equal(t, simpleserde.Map{"name": "bob", "items": nil}, simple)
	})

	t.Run("it passes byte slices through untouched", func(t *testing.T) {
		type blob struct {
			Data []byte `json:"data"`
		}

		encode := simpleserde.StructEncoder[blob]()

		simple, err := encode(blob{Data: []byte("raw")})
		require.NoError(t, err)

		assert.Equal(t, simpleserde.Map{"data": []byte("raw")}, simple)
	})

	t.Run("it encodes through pointers", func(t *testing.T) {
		encode := simpleserde.StructEncoder[*person.Person]()

		simple, err := encode(&person.Person{Name: "bob", Items: []string{"chair"}})
		require.NoError(t, err)

		assert.Equal(t, "bob", simple["name"])
	})

	t.Run("it fails on nil pointers", func(t *testing.T) {
		encode := simpleserde.StructEncoder[*person.Person]()

		simple, err := encode(nil)
		assert.ErrorIs(t, err, simpleserde.ErrInvalidKind)
		assert.Nil(t, simple)
	})

	t.Run("it fails on non-struct values", func(t *testing.T) {
		encode := simpleserde.StructEncoder[int]()

		simple, err := encode(42)
		assert.ErrorIs(t, err, simpleserde.ErrInvalidKind)
		assert.Nil(t, simple)
	})

	t.Run("it fails on cyclic records", func(t *testing.T) {
		type node struct {
			Name string `json:"name"`
			Next *node  `json:"next"`
		}

		cyclic := &node{Name: "a"}
		cyclic.Next = cyclic

		encode := simpleserde.StructEncoder[*node]()

		simple, err := encode(cyclic)
		assert.ErrorIs(t, err, simpleserde.ErrMaxDepthExceeded)
		assert.Nil(t, simple)
	})
}

func TestNewStruct(t *testing.T) {
	t.Run("it installs the reflection encoder", func(t *testing.T) {
		converter := simpleserde.NewStruct[person.Person](nil)

		simple, err := converter.Encode(person.Person{Name: "bob", Items: []string{"chair"}})
		require.NoError(t, err)
		assert.Equal(t, "bob", simple["name"])
	})

	t.Run("it serializes only without a decoder", func(t *testing.T) {
		converter := simpleserde.NewStruct[person.Person](nil)

		_, err := converter.Decode(simpleserde.Map{"name": "bob"})
		assert.ErrorIs(t, err, simpleserde.ErrMissingDecoder)
	})
}
