package docstore

import (
	"context"
	"errors"
)

// FieldID addresses the document id in filters.
const FieldID = "__id__"

var (
	ErrNotFound      = errors.New("document not found")
	ErrEmptyBatch    = errors.New("batch has no writes")
	ErrInvalidFilter = errors.New("invalid filter")
)

type Fields map[string]any

type Document struct {
	ID     string
	Fields Fields
}

// Filter is an equality match on a single field.
type Filter struct {
	Field string
	Value any
}

func Where(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

type deleteField struct{}

// DeleteField removes a field when passed as a value to Update.
var DeleteField any = deleteField{}

func isDeleteField(v any) bool {
	_, ok := v.(deleteField)
	return ok
}

// Store is the document database used by every collection accessor.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Find(ctx context.Context, collection string, filters ...Filter) ([]Document, error)
	Add(ctx context.Context, collection string, fields Fields) (string, error)
	Set(ctx context.Context, collection, id string, fields Fields) error
	Update(ctx context.Context, collection, id string, fields Fields) error
	Delete(ctx context.Context, collection, id string) error
	Commit(ctx context.Context, batch *Batch) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type writeKind int

const (
	writeSet writeKind = iota
	writeUpdate
	writeDelete
	writeDeleteWhere
)

type write struct {
	kind       writeKind
	collection string
	id         string
	fields     Fields
	filters    []Filter
}

// Batch collects writes that Commit applies as one atomic unit.
type Batch struct {
	writes []write
}

func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) Set(collection, id string, fields Fields) *Batch {
	b.writes = append(b.writes, write{kind: writeSet, collection: collection, id: id, fields: fields})
	return b
}

// Update merges fields into an existing document. The commit fails if the
// document does not exist.
func (b *Batch) Update(collection, id string, fields Fields) *Batch {
	b.writes = append(b.writes, write{kind: writeUpdate, collection: collection, id: id, fields: fields})
	return b
}

func (b *Batch) Delete(collection, id string) *Batch {
	b.writes = append(b.writes, write{kind: writeDelete, collection: collection, id: id})
	return b
}

// DeleteWhere deletes every document matching filters. The match is
// evaluated inside the commit, not when the write is queued.
func (b *Batch) DeleteWhere(collection string, filters ...Filter) *Batch {
	b.writes = append(b.writes, write{kind: writeDeleteWhere, collection: collection, filters: filters})
	return b
}

func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.writes)
}

func validateBatch(b *Batch) error {
	if b.Len() == 0 {
		return ErrEmptyBatch
	}
	for _, w := range b.writes {
		if w.kind == writeDeleteWhere && len(w.filters) == 0 {
			return ErrInvalidFilter
		}
	}
	return nil
}

func splitUpdate(fields Fields) (Fields, []string) {
	set := Fields{}
	var unset []string
	for key, value := range fields {
		if isDeleteField(value) {
			unset = append(unset, key)
			continue
		}
		set[key] = value
	}
	return set, unset
}
