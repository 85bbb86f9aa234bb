package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres stores every collection in the documents table as JSONB rows.
type Postgres struct {
	DB *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{DB: db}
}

func (p *Postgres) Get(ctx context.Context, collection, id string) (Document, error) {
	var raw []byte
	err := p.DB.QueryRow(ctx, `
    SELECT data FROM documents WHERE collection = $1 AND id = $2
  `, collection, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	fields, err := decodeJSONFields(raw)
	if err != nil {
		return Document{}, err
	}
	return Document{ID: id, Fields: fields}, nil
}

func (p *Postgres) Find(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	where, args, err := pgWhere(collection, filters)
	if err != nil {
		return nil, err
	}
	rows, err := p.DB.Query(ctx, "SELECT id, data FROM documents WHERE "+where+" ORDER BY seq", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		fields, err := decodeJSONFields(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, Document{ID: id, Fields: fields})
	}
	return out, rows.Err()
}

func (p *Postgres) Add(ctx context.Context, collection string, fields Fields) (string, error) {
	id := uuid.NewString()
	if err := p.Set(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

func (p *Postgres) Set(ctx context.Context, collection, id string, fields Fields) error {
	return pgSet(ctx, p.DB, collection, id, fields)
}

func (p *Postgres) Update(ctx context.Context, collection, id string, fields Fields) error {
	return pgUpdate(ctx, p.DB, collection, id, fields)
}

func (p *Postgres) Delete(ctx context.Context, collection, id string) error {
	_, err := p.DB.Exec(ctx, "DELETE FROM documents WHERE collection = $1 AND id = $2", collection, id)
	return err
}

func (p *Postgres) Commit(ctx context.Context, batch *Batch) error {
	if err := validateBatch(batch); err != nil {
		return err
	}
	tx, err := p.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	for _, w := range batch.writes {
		if err := pgApply(ctx, tx, w); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
	}

	return tx.Commit(ctx)
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.DB.Ping(ctx)
}

func (p *Postgres) Close(context.Context) error {
	p.DB.Close()
	return nil
}

func pgApply(ctx context.Context, q querier, w write) error {
	switch w.kind {
	case writeSet:
		return pgSet(ctx, q, w.collection, w.id, w.fields)
	case writeUpdate:
		return pgUpdate(ctx, q, w.collection, w.id, w.fields)
	case writeDelete:
		_, err := q.Exec(ctx, "DELETE FROM documents WHERE collection = $1 AND id = $2", w.collection, w.id)
		return err
	case writeDeleteWhere:
		where, args, err := pgWhere(w.collection, w.filters)
		if err != nil {
			return err
		}
		_, err = q.Exec(ctx, "DELETE FROM documents WHERE "+where, args...)
		return err
	default:
		return fmt.Errorf("unknown write kind %d", w.kind)
	}
}

func pgSet(ctx context.Context, q querier, collection, id string, fields Fields) error {
	set, _ := splitUpdate(fields)
	raw, err := json.Marshal(encodeJSONFields(set))
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, `
    INSERT INTO documents (collection, id, data)
    VALUES ($1, $2, $3::jsonb)
    ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
  `, collection, id, string(raw))
	return err
}

func pgUpdate(ctx context.Context, q querier, collection, id string, fields Fields) error {
	set, unset := splitUpdate(fields)
	raw, err := json.Marshal(encodeJSONFields(set))
	if err != nil {
		return err
	}
	if unset == nil {
		unset = []string{}
	}
	tag, err := q.Exec(ctx, `
    UPDATE documents
    SET data = (data || $3::jsonb) - $4::text[], updated_at = now()
    WHERE collection = $1 AND id = $2
  `, collection, id, string(raw), unset)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update %s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

func pgWhere(collection string, filters []Filter) (string, []any, error) {
	clauses := []string{"collection = $1"}
	args := []any{collection}
	contains := map[string]any{}
	for _, f := range filters {
		if f.Field == "" {
			return "", nil, ErrInvalidFilter
		}
		if f.Field == FieldID {
			args = append(args, f.Value)
			clauses = append(clauses, fmt.Sprintf("id = $%d", len(args)))
			continue
		}
		contains[f.Field] = encodeJSONValue(f.Value)
	}
	if len(contains) > 0 {
		raw, err := json.Marshal(contains)
		if err != nil {
			return "", nil, err
		}
		args = append(args, string(raw))
		clauses = append(clauses, fmt.Sprintf("data @> $%d::jsonb", len(args)))
	}
	return strings.Join(clauses, " AND "), args, nil
}

func decodeJSONFields(raw []byte) (Fields, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return Normalize(fields), nil
}
