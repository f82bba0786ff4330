// Package mongostore stores notes in a MongoDB collection. Note IDs are the
// hex form of the ObjectID the driver generates on insert.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"notes/internal/note"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type document struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Text  string             `bson:"text"`
	Email string             `bson:"email,omitempty"`
	Tags  []string           `bson:"tags,omitempty"`
}

// Connect dials uri with the stable v1 server API and pings the deployment
// once before returning.
func Connect(ctx context.Context, uri, database, collection string) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Store{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Create(ctx context.Context, n note.Note) (note.Note, error) {
	res, err := s.coll.InsertOne(ctx, document{Text: n.Text, Email: n.Email, Tags: n.Tags})
	if err != nil {
		return note.Note{}, err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return note.Note{}, fmt.Errorf("unexpected inserted id %T", res.InsertedID)
	}
	n.ID = oid.Hex()
	return n, nil
}

func (s *Store) List(ctx context.Context, f note.Filter) ([]note.Note, error) {
	filter := bson.M{}
	if f.Email != "" {
		filter["email"] = f.Email
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}

	cur, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]note.Note, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toNote())
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, sel note.Selector, text string, tags []string) (note.Note, error) {
	filter, ok := selectorFilter(sel)
	if !ok {
		return note.Note{}, note.ErrNotFound
	}

	set := bson.M{"text": text}
	update := bson.M{"$set": set}
	if len(tags) > 0 {
		set["tags"] = tags
	} else {
		update["$unset"] = bson.M{"tags": ""}
	}

	var d document
	err := s.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return note.Note{}, note.ErrNotFound
	}
	if err != nil {
		return note.Note{}, err
	}
	return d.toNote(), nil
}

func (s *Store) Delete(ctx context.Context, sel note.Selector) error {
	filter, ok := selectorFilter(sel)
	if !ok {
		return note.ErrNotFound
	}
	res, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return note.ErrNotFound
	}
	return nil
}

// selectorFilter reports false when the ID is not a valid ObjectID, which
// can never match a stored note.
func selectorFilter(sel note.Selector) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(sel.ID)
	if err != nil {
		return nil, false
	}
	filter := bson.M{"_id": oid}
	if sel.Email != "" {
		filter["email"] = sel.Email
	}
	return filter, true
}

func (d document) toNote() note.Note {
	return note.Note{ID: d.ID.Hex(), Text: d.Text, Email: d.Email, Tags: d.Tags}
}
