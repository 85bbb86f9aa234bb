package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoIDField = "_id"

// Mongo maps each collection onto a MongoDB collection with string ids.
// Commit needs a replica set because it runs inside a transaction.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func ConnectMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	return &Mongo{Client: client, DB: client.Database(database)}, nil
}

func (m *Mongo) Get(ctx context.Context, collection, id string) (Document, error) {
	var raw bson.M
	err := m.DB.Collection(collection).FindOne(ctx, bson.M{mongoIDField: id}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	return mongoDocument(raw), nil
}

func (m *Mongo) Find(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	filter, err := mongoFilter(filters)
	if err != nil {
		return nil, err
	}
	cursor, err := m.DB.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}
		out = append(out, mongoDocument(raw))
	}
	return out, cursor.Err()
}

func (m *Mongo) Add(ctx context.Context, collection string, fields Fields) (string, error) {
	id := uuid.NewString()
	if err := m.Set(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

func (m *Mongo) Set(ctx context.Context, collection, id string, fields Fields) error {
	return m.apply(ctx, write{kind: writeSet, collection: collection, id: id, fields: fields})
}

func (m *Mongo) Update(ctx context.Context, collection, id string, fields Fields) error {
	return m.apply(ctx, write{kind: writeUpdate, collection: collection, id: id, fields: fields})
}

func (m *Mongo) Delete(ctx context.Context, collection, id string) error {
	return m.apply(ctx, write{kind: writeDelete, collection: collection, id: id})
}

func (m *Mongo) Commit(ctx context.Context, batch *Batch) error {
	if err := validateBatch(batch); err != nil {
		return err
	}
	session, err := m.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		for _, w := range batch.writes {
			if err := m.apply(sc, w); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

func (m *Mongo) apply(ctx context.Context, w write) error {
	coll := m.DB.Collection(w.collection)
	switch w.kind {
	case writeSet:
		set, _ := splitUpdate(w.fields)
		doc := bson.M{}
		for key, value := range set {
			doc[key] = value
		}
		doc[mongoIDField] = w.id
		_, err := coll.ReplaceOne(ctx, bson.M{mongoIDField: w.id}, doc, options.Replace().SetUpsert(true))
		return err
	case writeUpdate:
		set, unset := splitUpdate(w.fields)
		update := bson.M{}
		if len(set) > 0 {
			update["$set"] = bson.M(set)
		}
		if len(unset) > 0 {
			removed := bson.M{}
			for _, key := range unset {
				removed[key] = ""
			}
			update["$unset"] = removed
		}
		if len(update) == 0 {
			err := coll.FindOne(ctx, bson.M{mongoIDField: w.id}).Err()
			if errors.Is(err, mongo.ErrNoDocuments) {
				return fmt.Errorf("update %s/%s: %w", w.collection, w.id, ErrNotFound)
			}
			return err
		}
		res, err := coll.UpdateOne(ctx, bson.M{mongoIDField: w.id}, update)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("update %s/%s: %w", w.collection, w.id, ErrNotFound)
		}
		return nil
	case writeDelete:
		_, err := coll.DeleteOne(ctx, bson.M{mongoIDField: w.id})
		return err
	case writeDeleteWhere:
		filter, err := mongoFilter(w.filters)
		if err != nil {
			return err
		}
		_, err = coll.DeleteMany(ctx, filter)
		return err
	default:
		return fmt.Errorf("unknown write kind %d", w.kind)
	}
}

func mongoFilter(filters []Filter) (bson.M, error) {
	filter := bson.M{}
	for _, f := range filters {
		switch f.Field {
		case "":
			return nil, ErrInvalidFilter
		case FieldID:
			filter[mongoIDField] = f.Value
		default:
			filter[f.Field] = f.Value
		}
	}
	return filter, nil
}

func mongoDocument(raw bson.M) Document {
	id, _ := raw[mongoIDField].(string)
	delete(raw, mongoIDField)
	return Document{ID: id, Fields: Normalize(Fields(raw))}
}
