package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID is a backend identifier in canonical string form.
//
// The backend is not consistent about identifier shapes: some endpoints send
// a bare hex string, others an extended-JSON {"$oid": "..."} object, and
// older records may carry numbers. Every ID is normalized when decoded so
// that equality and set membership can compare plain strings.
type ID string

// CanonicalID normalizes raw identifier text. Valid ObjectIDs are rendered as
// lowercase hex; anything else is returned trimmed and otherwise unchanged.
func CanonicalID(raw string) ID {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if oid, err := primitive.ObjectIDFromHex(s); err == nil {
		return ID(oid.Hex())
	}
	return ID(s)
}

// IDFromAny normalizes an identifier decoded into a generic JSON value
// (string, number, or {"$oid"} / {"_id"} object). Unknown shapes yield "".
func IDFromAny(v any) ID {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return CanonicalID(x)
	case float64:
		return ID(strconv.FormatFloat(x, 'f', -1, 64))
	case json.Number:
		return ID(x.String())
	case primitive.ObjectID:
		return ID(x.Hex())
	case map[string]any:
		if oid, ok := x["$oid"]; ok {
			return IDFromAny(oid)
		}
		if id, ok := x["_id"]; ok {
			return IDFromAny(id)
		}
		if id, ok := x["id"]; ok {
			return IDFromAny(id)
		}
	}
	return ""
}

// String returns the canonical form.
func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool { return id == "" }

// UnmarshalJSON accepts every identifier shape the backend emits.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}

	switch raw.(type) {
	case string, json.Number, map[string]any:
		*id = IDFromAny(raw)
		return nil
	default:
		return fmt.Errorf("unsupported id shape: %s", string(b))
	}
}

// IDs converts raw strings into canonical IDs, dropping empties.
func IDs(raw ...string) []ID {
	out := make([]ID, 0, len(raw))
	for _, r := range raw {
		if id := CanonicalID(r); !id.IsZero() {
			out = append(out, id)
		}
	}
	return out
}

// ContainsID reports whether id is present in ids after canonicalization.
func ContainsID(ids []ID, id ID) bool {
	want := CanonicalID(string(id))
	if want.IsZero() {
		return false
	}
	for _, candidate := range ids {
		if CanonicalID(string(candidate)) == want {
			return true
		}
	}
	return false
}

// isEmbeddedObject reports whether b is a JSON object other than an
// extended-JSON {"$oid": ...} identifier.
func isEmbeddedObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return false
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return false
	}
	_, isOID := keys["$oid"]
	return !isOID
}
