package docstore

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memCollection struct {
	order []string
	docs  map[string]Fields
}

func newMemCollection() *memCollection {
	return &memCollection{docs: map[string]Fields{}}
}

func (c *memCollection) clone() *memCollection {
	out := &memCollection{
		order: append([]string(nil), c.order...),
		docs:  make(map[string]Fields, len(c.docs)),
	}
	for id, fields := range c.docs {
		out.docs[id] = fields
	}
	return out
}

func (c *memCollection) put(id string, fields Fields) {
	if _, ok := c.docs[id]; !ok {
		c.order = append(c.order, id)
	}
	c.docs[id] = fields
}

func (c *memCollection) remove(id string) {
	if _, ok := c.docs[id]; !ok {
		return
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *memCollection) match(filters []Filter) []string {
	var ids []string
	for _, id := range c.order {
		if matches(id, c.docs[id], filters) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Memory keeps collections in process. Documents are returned in insertion
// order.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

func NewMemory() *Memory {
	return &Memory{collections: map[string]*memCollection{}}
}

func (m *Memory) collection(name string) *memCollection {
	c, ok := m.collections[name]
	if !ok {
		c = newMemCollection()
		m.collections[name] = c
	}
	return c
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[collection]
	if !ok {
		return Document{}, ErrNotFound
	}
	fields, ok := c.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Fields: Normalize(copyFields(fields))}, nil
}

func (m *Memory) Find(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[collection]
	if !ok {
		return nil, nil
	}
	ids := c.match(filters)
	out := make([]Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, Document{ID: id, Fields: Normalize(copyFields(c.docs[id]))})
	}
	return out, nil
}

func (m *Memory) Add(ctx context.Context, collection string, fields Fields) (string, error) {
	id := uuid.NewString()
	if err := m.Set(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

func (m *Memory) Set(ctx context.Context, collection, id string, fields Fields) error {
	return m.Commit(ctx, NewBatch().Set(collection, id, fields))
}

func (m *Memory) Update(ctx context.Context, collection, id string, fields Fields) error {
	return m.Commit(ctx, NewBatch().Update(collection, id, fields))
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	return m.Commit(ctx, NewBatch().Delete(collection, id))
}

// Commit applies the batch to copies of the touched collections and swaps
// them in only when every write succeeded.
func (m *Memory) Commit(ctx context.Context, batch *Batch) error {
	if err := validateBatch(batch); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	staged := map[string]*memCollection{}
	stage := func(name string) *memCollection {
		if c, ok := staged[name]; ok {
			return c
		}
		c := m.collection(name).clone()
		staged[name] = c
		return c
	}

	for _, w := range batch.writes {
		c := stage(w.collection)
		switch w.kind {
		case writeSet:
			set, _ := splitUpdate(w.fields)
			c.put(w.id, copyFields(set))
		case writeUpdate:
			existing, ok := c.docs[w.id]
			if !ok {
				return fmt.Errorf("update %s/%s: %w", w.collection, w.id, ErrNotFound)
			}
			merged := copyFields(existing)
			set, unset := splitUpdate(w.fields)
			for key, value := range copyFields(set) {
				merged[key] = value
			}
			for _, key := range unset {
				delete(merged, key)
			}
			c.docs[w.id] = merged
		case writeDelete:
			c.remove(w.id)
		case writeDeleteWhere:
			for _, id := range c.match(w.filters) {
				c.remove(id)
			}
		}
	}

	for name, c := range staged {
		m.collections[name] = c
	}
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *Memory) Close(context.Context) error {
	return nil
}

func matches(id string, fields Fields, filters []Filter) bool {
	for _, f := range filters {
		if f.Field == FieldID {
			if s, ok := f.Value.(string); !ok || s != id {
				return false
			}
			continue
		}
		value, ok := fields[f.Field]
		if !ok || !valuesEqual(normalizeValue(value), normalizeValue(f.Value)) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func copyFields(fields Fields) Fields {
	out := make(Fields, len(fields))
	for key, value := range fields {
		out[key] = copyValue(value)
	}
	return out
}

func copyValue(value any) any {
	switch v := value.(type) {
	case Fields:
		return copyFields(v)
	case map[string]any:
		return map[string]any(copyFields(v))
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = copyValue(item)
		}
		return out
	case []string:
		return append([]string(nil), v...)
	default:
		return value
	}
}
