package docstore

import (
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateEnvelopeKey = "$date"

// Normalize converts every provider timestamp representation found in
// fields into a UTC time.Time. Backends call it once on read so accessors
// only ever see the canonical instant.
func Normalize(fields Fields) Fields {
	out := make(Fields, len(fields))
	for key, value := range fields {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case time.Time:
		return v.UTC()
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.UTC()
	case primitive.DateTime:
		return v.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(v.T), 0).UTC()
	case Fields:
		return normalizeMap(v)
	case primitive.M:
		return normalizeMap(v)
	case primitive.D:
		return normalizeMap(v.Map())
	case primitive.A:
		return normalizeSlice(v)
	case map[string]any:
		return normalizeMap(v)
	case []any:
		return normalizeSlice(v)
	default:
		return value
	}
}

func normalizeMap(m map[string]any) any {
	if ts, ok := dateEnvelope(m); ok {
		return ts
	}
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeSlice(values []any) []any {
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = normalizeValue(value)
	}
	return out
}

func dateEnvelope(m map[string]any) (time.Time, bool) {
	if len(m) != 1 {
		return time.Time{}, false
	}
	raw, ok := m[dateEnvelopeKey].(string)
	if !ok {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed.UTC(), true
}

// encodeJSONValue wraps time values so JSON backends can restore them on read.
func encodeJSONValue(value any) any {
	switch v := value.(type) {
	case time.Time:
		return map[string]any{dateEnvelopeKey: v.UTC().Format(time.RFC3339Nano)}
	case *time.Time:
		if v == nil {
			return nil
		}
		return map[string]any{dateEnvelopeKey: v.UTC().Format(time.RFC3339Nano)}
	case Fields:
		return encodeJSONFields(v)
	case map[string]any:
		return encodeJSONFields(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = encodeJSONValue(item)
		}
		return out
	default:
		return value
	}
}

func encodeJSONFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		out[key] = encodeJSONValue(value)
	}
	return out
}

// Decode maps a document onto out, merging the id into the "id" key.
// Fields whose stored value does not fit the target are left zero and the
// rest of the document still decodes.
func Decode(doc Document, out any) error {
	payload := make(map[string]any, len(doc.Fields)+1)
	for key, value := range doc.Fields {
		payload[key] = value
	}
	payload["id"] = doc.ID

	raw, err := json.Marshal(payload)
	if err == nil {
		err = json.Unmarshal(raw, out)
		if err == nil {
			return nil
		}
	}
	var invalid *json.InvalidUnmarshalError
	if errors.As(err, &invalid) {
		return err
	}

	// Retry key by key; a bad value loses only its own field.
	for _, key := range slices.Sorted(maps.Keys(payload)) {
		field, err := json.Marshal(map[string]any{key: payload[key]})
		if err != nil {
			continue
		}
		_ = json.Unmarshal(field, out)
	}
	return nil
}

func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := Decode(doc, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
