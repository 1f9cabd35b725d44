// Package person serves as a small example of record types converted
// through simpleserde.
//
// This package is used for tests in the parent module.
package person

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	simpleserde "github.com/DonalChilde/pfmsoft-simple-serializer"
)

// Person is a naive record carrying a name and a list of owned items.
type Person struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// Converter is the ready-made Person converter, using the reflection-based
// encoder and an explicit decoder.
var Converter = simpleserde.NewStruct[Person](
	simpleserde.DecoderFunc[Person, simpleserde.Map](decodePerson),
)

func decodePerson(simple simpleserde.Map) (Person, error) {
	var person Person

	name, err := asString(simple["name"])
	if err != nil {
		return person, fmt.Errorf("person.decodePerson: failed to decode name, %w", err)
	}

	items, err := asStringSlice(simple["items"])
	if err != nil {
		return person, fmt.Errorf("person.decodePerson: failed to decode items, %w", err)
	}

	person.Name = name
	person.Items = items

	return person, nil
}

// Audit carries bookkeeping fields shared by richer records. It is meant
// to be embedded, so that its fields flatten into the enclosing record's
// encoded mapping.
type Audit struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedBy string    `json:"updated_by"`
}

// Member extends the basic person shape with identity, audit and nested
// fields, to exercise embedded flattening, text-marshaling field types and
// the numeric drift introduced by text codecs.
type Member struct {
	Audit

	ID     uuid.UUID         `json:"id"`
	Name   string            `json:"name"`
	Visits int               `json:"visits"`
	Rating float64           `json:"rating"`
	Extra  map[string]string `json:"extra"`
}

// MemberConverter is the ready-made Member converter.
var MemberConverter = simpleserde.NewStruct[Member](
	simpleserde.DecoderFunc[Member, simpleserde.Map](decodeMember),
)

func decodeMember(simple simpleserde.Map) (Member, error) {
	var member Member

	rawID, err := asString(simple["id"])
	if err != nil {
		return member, fmt.Errorf("person.decodeMember: failed to decode id, %w", err)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return member, fmt.Errorf("person.decodeMember: failed to parse id, %w", err)
	}

	rawCreatedAt, err := asString(simple["created_at"])
	if err != nil {
		return member, fmt.Errorf("person.decodeMember: failed to decode created_at, %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, rawCreatedAt)
	if err != nil {
		return member, fmt.Errorf("person.decodeMember: failed to parse created_at, %w", err)
	}

	updatedBy, err := asString(simple["updated_by"])
	if err != nil {
		return member, fmt.Errorf("person.decodeMember: failed to decode updated_by, %w", err)
	}

	name, err := asString(simple["name"])
	if err != nil {
		return member, fmt.Errorf("person.decodeMember: failed to decode name, %w", err)
	}

	visits, err := asInt(simple["visits"])
	if err != nil {
		return member, fmt.Errorf("person.decodeMember: failed to decode visits, %w", err)
	}

	rating, err := asFloat(simple["rating"])
	if err != nil {
		return member, fmt.Errorf("person.decodeMember: failed to decode rating, %w", err)
	}

	extra, err := asStringMap(simple["extra"])
	if err != nil {
		return member, fmt.Errorf("person.decodeMember: failed to decode extra, %w", err)
	}

	member.CreatedAt = createdAt
	member.UpdatedBy = updatedBy
	member.ID = id
	member.Name = name
	member.Visits = visits
	member.Rating = rating
	member.Extra = extra

	return member, nil
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("unexpected type %T, expected string", v)
	}

	return s, nil
}

// asInt accepts the integer shapes produced by the different paths a
// simple value can take: int from in-memory encoding and YAML parsing,
// float64 from JSON parsing.
func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("unexpected type %T, expected integer", v)
	}
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("unexpected type %T, expected float", v)
	}
}

func asStringSlice(v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}

	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected type %T, expected list", v)
	}

	out := make([]string, 0, len(raw))

	for i, elem := range raw {
		s, err := asString(elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		out = append(out, s)
	}

	return out, nil
}

func asStringMap(v any) (map[string]string, error) {
	if v == nil {
		return nil, nil
	}

	raw, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected type %T, expected mapping", v)
	}

	out := make(map[string]string, len(raw))

	for key, elem := range raw {
		s, err := asString(elem)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}

		out[key] = s
	}

	return out, nil
}
