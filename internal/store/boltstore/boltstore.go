// Package boltstore keeps notes as JSON documents in a single bbolt bucket.
// Keys are UUIDv7 strings, so a cursor walk yields creation order.
package boltstore

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"notes/internal/note"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("notes")

type Store struct {
	db *bolt.DB
}

type document struct {
	Text  string   `json:"text"`
	Email string   `json:"email,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

func (s *Store) Create(_ context.Context, n note.Note) (note.Note, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return note.Note{}, err
	}
	n.ID = id.String()

	encoded, err := json.Marshal(document{Text: n.Text, Email: n.Email, Tags: n.Tags})
	if err != nil {
		return note.Note{}, err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(n.ID), encoded)
	})
	if err != nil {
		return note.Note{}, err
	}
	return n, nil
}

func (s *Store) List(_ context.Context, f note.Filter) ([]note.Note, error) {
	var out []note.Note
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, v []byte) error {
			var d document
			if err := json.Unmarshal(v, &d); err != nil {
				return fmt.Errorf("decode note %s: %w", k, err)
			}
			if f.Email != "" && d.Email != f.Email {
				return nil
			}
			if f.Tag != "" && !slices.Contains(d.Tags, f.Tag) {
				return nil
			}
			out = append(out, d.toNote(string(k)))
			return nil
		})
	})
	return out, err
}

func (s *Store) Update(_ context.Context, sel note.Selector, text string, tags []string) (note.Note, error) {
	var out note.Note
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		d, err := get(b, sel)
		if err != nil {
			return err
		}
		d.Text = text
		d.Tags = tags
		encoded, err := json.Marshal(d)
		if err != nil {
			return err
		}
		out = d.toNote(sel.ID)
		return b.Put([]byte(sel.ID), encoded)
	})
	return out, err
}

func (s *Store) Delete(_ context.Context, sel note.Selector) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if _, err := get(b, sel); err != nil {
			return err
		}
		return b.Delete([]byte(sel.ID))
	})
}

func get(b *bolt.Bucket, sel note.Selector) (document, error) {
	var d document
	encoded := b.Get([]byte(sel.ID))
	if len(encoded) == 0 {
		return d, note.ErrNotFound
	}
	if err := json.Unmarshal(encoded, &d); err != nil {
		return d, fmt.Errorf("decode note %s: %w", sel.ID, err)
	}
	if sel.Email != "" && d.Email != sel.Email {
		return d, note.ErrNotFound
	}
	return d, nil
}

func (d document) toNote(id string) note.Note {
	return note.Note{ID: id, Text: d.Text, Email: d.Email, Tags: d.Tags}
}
