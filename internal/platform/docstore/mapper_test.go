package docstore

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sample struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Salary      float64    `json:"salary"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func TestNormalizeConvertsProviderTimestamps(t *testing.T) {
	want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fields := Normalize(Fields{
		"native":   want.In(time.FixedZone("X", 3600)),
		"mongo":    primitive.NewDateTimeFromTime(want),
		"envelope": map[string]any{"$date": want.Format(time.RFC3339Nano)},
		"nested":   map[string]any{"at": primitive.NewDateTimeFromTime(want)},
		"list":     []any{primitive.NewDateTimeFromTime(want)},
		"plain":    "text",
	})

	for _, key := range []string{"native", "mongo", "envelope"} {
		got, ok := fields[key].(time.Time)
		if !ok || !got.Equal(want) {
			t.Fatalf("%s: expected %v, got %#v", key, want, fields[key])
		}
	}
	nested := fields["nested"].(map[string]any)
	if got, ok := nested["at"].(time.Time); !ok || !got.Equal(want) {
		t.Fatalf("nested: expected %v, got %#v", want, nested["at"])
	}
	if got, ok := fields["list"].([]any)[0].(time.Time); !ok || !got.Equal(want) {
		t.Fatalf("list: expected %v, got %#v", want, fields["list"])
	}
	if fields["plain"] != "text" {
		t.Fatalf("expected plain value untouched, got %v", fields["plain"])
	}
}

func TestNormalizeLeavesLookalikeMapsAlone(t *testing.T) {
	fields := Normalize(Fields{"meta": map[string]any{"$date": "not a date"}})
	if _, ok := fields["meta"].(map[string]any); !ok {
		t.Fatalf("expected map to survive, got %#v", fields["meta"])
	}
}

func TestDecodeMergesID(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	var out sample
	err := Decode(Document{ID: "e1", Fields: Fields{"name": "Ana", "salary": 4200.5, "createdAt": created}}, &out)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != "e1" || out.Name != "Ana" || out.Salary != 4200.5 || !out.CreatedAt.Equal(created) {
		t.Fatalf("unexpected decode result: %+v", out)
	}
	if out.CompletedAt != nil {
		t.Fatal("expected absent optional field to stay nil")
	}
}

func TestDecodeToleratesMistypedFields(t *testing.T) {
	var out sample
	err := Decode(Document{ID: "e1", Fields: Fields{"name": "Ana", "salary": "lots"}}, &out)
	if err != nil {
		t.Fatalf("expected partial decode, got %v", err)
	}
	if out.ID != "e1" {
		t.Fatalf("expected id to be set, got %+v", out)
	}
}

type taskSample struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Status  string     `json:"status"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

func TestDecodeSkipsMalformedTimestamps(t *testing.T) {
	cases := []struct {
		name    string
		dueDate any
	}{
		{name: "plain date string", dueDate: "2024-06-10"},
		{name: "unix number", dueDate: 1718000000},
		{name: "object", dueDate: map[string]any{"seconds": 1718000000}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out taskSample
			err := Decode(Document{ID: "t1", Fields: Fields{
				"dueDate": tc.dueDate,
				"status":  "Completed",
				"title":   "Call",
			}}, &out)
			if err != nil {
				t.Fatalf("expected partial decode, got %v", err)
			}
			if out.ID != "t1" || out.Status != "Completed" || out.Title != "Call" {
				t.Fatalf("expected remaining fields decoded, got %+v", out)
			}
			if out.DueDate != nil && !out.DueDate.IsZero() {
				t.Fatalf("expected dueDate left empty, got %v", out.DueDate)
			}
		})
	}
}

func TestDecodeAllKeepsMalformedDocuments(t *testing.T) {
	docs := []Document{
		{ID: "good", Fields: Fields{"title": "A", "dueDate": time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)}},
		{ID: "bad", Fields: Fields{"title": "B", "dueDate": 1718000000}},
	}
	out, err := DecodeAll[taskSample](docs)
	if err != nil {
		t.Fatalf("decode all: %v", err)
	}
	if len(out) != 2 || out[1].ID != "bad" || out[1].Title != "B" {
		t.Fatalf("unexpected result: %+v", out)
	}
	if out[0].DueDate == nil || out[0].DueDate.Day() != 10 {
		t.Fatalf("expected good dueDate kept, got %+v", out[0])
	}
}

func TestDecodeRejectsNonPointer(t *testing.T) {
	var out taskSample
	if err := Decode(Document{ID: "t1"}, out); err == nil {
		t.Fatal("expected error for non-pointer target")
	}
}

func TestDecodeAll(t *testing.T) {
	docs := []Document{
		{ID: "a", Fields: Fields{"name": "A"}},
		{ID: "b", Fields: Fields{"name": "B"}},
	}
	out, err := DecodeAll[sample](docs)
	if err != nil {
		t.Fatalf("decode all: %v", err)
	}
	if len(out) != 2 || out[0].ID != "a" || out[1].Name != "B" {
		t.Fatalf("unexpected result: %+v", out)
	}
}
