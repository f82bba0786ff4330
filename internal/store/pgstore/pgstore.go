package pgstore

import (
	"context"
	"fmt"
	"time"

	"notes/internal/note"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the notes table row.
type Record struct {
	ID        string         `gorm:"type:uuid;primaryKey"`
	Text      string         `gorm:"type:text;not null;default:''"`
	Email     *string        `gorm:"index"`
	Tags      pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt time.Time      `gorm:"index;not null;default:now()"`
}

func (Record) TableName() string { return "notes" }

type Store struct {
	DB *gorm.DB
}

func Connect(dsn string) (*Store, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return &Store{DB: gdb}, nil
}

func (s *Store) AutoMigrateAndIndexes() error {
	if err := s.DB.AutoMigrate(&Record{}); err != nil {
		return err
	}

	stmts := []string{
		`create index if not exists idx_notes_tags on notes using gin (tags);`,
		`create index if not exists idx_notes_email_created on notes(email, created_at);`,
	}
	for _, st := range stmts {
		if err := s.DB.Exec(st).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, st)
		}
	}
	return nil
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Create(ctx context.Context, n note.Note) (note.Note, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return note.Note{}, err
	}
	rec := Record{
		ID:        id.String(),
		Text:      n.Text,
		Tags:      pq.StringArray(n.Tags),
		CreatedAt: time.Now(),
	}
	if n.Email != "" {
		rec.Email = &n.Email
	}
	if rec.Tags == nil {
		rec.Tags = pq.StringArray{}
	}
	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return note.Note{}, err
	}
	n.ID = rec.ID
	return n, nil
}

func (s *Store) List(ctx context.Context, f note.Filter) ([]note.Note, error) {
	q := s.DB.WithContext(ctx).Model(&Record{})
	if f.Email != "" {
		q = q.Where("email = ?", f.Email)
	}
	if f.Tag != "" {
		q = q.Where("? = any(tags)", f.Tag)
	}

	var rows []Record
	if err := q.Order("created_at asc, id asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]note.Note, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toNote())
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, sel note.Selector, text string, tags []string) (note.Note, error) {
	if _, err := uuid.Parse(sel.ID); err != nil {
		return note.Note{}, note.ErrNotFound
	}
	if tags == nil {
		tags = []string{}
	}

	var rec Record
	res := s.scoped(ctx, sel).
		Model(&rec).
		Clauses(clause.Returning{}).
		Updates(map[string]any{
			"text": text,
			"tags": pq.StringArray(tags),
		})
	if res.Error != nil {
		return note.Note{}, res.Error
	}
	if res.RowsAffected == 0 {
		return note.Note{}, note.ErrNotFound
	}
	return rec.toNote(), nil
}

func (s *Store) Delete(ctx context.Context, sel note.Selector) error {
	if _, err := uuid.Parse(sel.ID); err != nil {
		return note.ErrNotFound
	}
	res := s.scoped(ctx, sel).Delete(&Record{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return note.ErrNotFound
	}
	return nil
}

func (s *Store) scoped(ctx context.Context, sel note.Selector) *gorm.DB {
	q := s.DB.WithContext(ctx).Where("id = ?", sel.ID)
	if sel.Email != "" {
		q = q.Where("email = ?", sel.Email)
	}
	return q
}

func (r Record) toNote() note.Note {
	n := note.Note{ID: r.ID, Text: r.Text}
	if r.Email != nil {
		n.Email = *r.Email
	}
	if len(r.Tags) > 0 {
		n.Tags = []string(r.Tags)
	}
	return n
}
