// Package sqldb is the SQL implementation of the storage interfaces,
// supporting SQLite and PostgreSQL through the dialect abstraction.
package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/serenia-app/serenia/internal/domain"
	"github.com/serenia-app/serenia/internal/storage"
	"github.com/serenia-app/serenia/internal/storage/dialect"
)

// Store is a SQL implementation of storage.Store.
type Store struct {
	db      *sqlx.DB
	dialect dialect.Dialect
}

var _ storage.Store = (*Store)(nil)

// Config holds database connection configuration.
type Config struct {
	Driver string // sqlite or postgres
	DSN    string // data source name / connection string
}

// New creates a new SQL store with the specified configuration.
func New(cfg Config) (*Store, error) {
	d, err := dialect.FromDriverName(cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("unsupported database driver: %w", err)
	}

	db, err := sqlx.Open(d.DriverName(), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite gets a single connection: WAL handles concurrency at the file
	// level, and :memory: databases exist per connection.
	if d.Name() == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	for _, stmt := range d.PragmaStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute pragma: %w", err)
		}
	}

	store := &Store{db: db, dialect: d}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// NewSQLite creates a SQLite-backed store.
func NewSQLite(dbPath string) (*Store, error) {
	return New(Config{Driver: "sqlite", DSN: dbPath})
}

func (s *Store) initSchema() error {
	ts := s.dialect.TimestampType()
	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS journal_entries (
id TEXT PRIMARY KEY,
user_id TEXT NOT NULL,
content TEXT NOT NULL,
emotion TEXT NOT NULL,
secondary_emotions TEXT,
intensity INTEGER NOT NULL,
tags TEXT,
ai_analysis TEXT,
created_at %s NOT NULL
)`, ts),
		`CREATE INDEX IF NOT EXISTS idx_journal_entries_user ON journal_entries (user_id, created_at)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS bookings (
id TEXT PRIMARY KEY,
pro TEXT NOT NULL,
hora TEXT NOT NULL,
created_at %s NOT NULL
)`, ts),
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type entryRow struct {
	ID                string         `db:"id"`
	UserID            string         `db:"user_id"`
	Content           string         `db:"content"`
	Emotion           string         `db:"emotion"`
	SecondaryEmotions sql.NullString `db:"secondary_emotions"`
	Intensity         int            `db:"intensity"`
	Tags              sql.NullString `db:"tags"`
	AIAnalysis        sql.NullString `db:"ai_analysis"`
	CreatedAt         time.Time      `db:"created_at"`
}

// SaveEntry inserts a journal entry. The analysis, when present, is stored as
// an opaque JSON blob and never re-validated on read.
func (s *Store) SaveEntry(ctx context.Context, entry *domain.Entry) error {
	secondary, err := json.Marshal(entry.SecondaryEmotions)
	if err != nil {
		return fmt.Errorf("marshal secondary emotions: %w", err)
	}
	tags, err := json.Marshal(entry.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	var analysis any
	if entry.Analysis != nil {
		blob, err := json.Marshal(entry.Analysis)
		if err != nil {
			return fmt.Errorf("marshal analysis: %w", err)
		}
		analysis = string(blob)
	}

	query := s.dialect.Rebind(`INSERT INTO journal_entries
(id, user_id, content, emotion, secondary_emotions, intensity, tags, ai_analysis, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = s.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.Content, string(entry.Emotion),
		string(secondary), entry.Intensity, string(tags), analysis, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// ListEntries returns a user's entries, newest first.
func (s *Store) ListEntries(ctx context.Context, userID string) ([]*domain.Entry, error) {
	query := s.dialect.Rebind(`SELECT id, user_id, content, emotion, secondary_emotions, intensity, tags, ai_analysis, created_at
FROM journal_entries WHERE user_id = ? ORDER BY created_at DESC`)

	var rows []entryRow
	if err := s.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	entries := make([]*domain.Entry, 0, len(rows))
	for i := range rows {
		entry, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DeleteEntry removes an entry by ID.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	query := s.dialect.Rebind(`DELETE FROM journal_entries WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *entryRow) toDomain() (*domain.Entry, error) {
	entry := &domain.Entry{
		ID:        r.ID,
		UserID:    r.UserID,
		Content:   r.Content,
		Emotion:   domain.Emotion(r.Emotion),
		Intensity: r.Intensity,
		CreatedAt: r.CreatedAt,
	}

	if r.SecondaryEmotions.Valid && r.SecondaryEmotions.String != "" {
		if err := json.Unmarshal([]byte(r.SecondaryEmotions.String), &entry.SecondaryEmotions); err != nil {
			return nil, fmt.Errorf("unmarshal secondary emotions for %s: %w", r.ID, err)
		}
	}
	if r.Tags.Valid && r.Tags.String != "" {
		if err := json.Unmarshal([]byte(r.Tags.String), &entry.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags for %s: %w", r.ID, err)
		}
	}
	if r.AIAnalysis.Valid && r.AIAnalysis.String != "" {
		if err := json.Unmarshal([]byte(r.AIAnalysis.String), &entry.Analysis); err != nil {
			return nil, fmt.Errorf("unmarshal analysis for %s: %w", r.ID, err)
		}
	}
	return entry, nil
}

// AppendBooking inserts a booking.
func (s *Store) AppendBooking(ctx context.Context, b *domain.Booking) error {
	query := s.dialect.Rebind(`INSERT INTO bookings (id, pro, hora, created_at) VALUES (?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, b.ID, b.Pro, b.Hora, b.CreatedAt); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// ListBookings returns all bookings, oldest first.
func (s *Store) ListBookings(ctx context.Context) ([]*domain.Booking, error) {
	query := `SELECT id, pro, hora, created_at FROM bookings ORDER BY created_at ASC`

	type bookingRow struct {
		ID        string    `db:"id"`
		Pro       string    `db:"pro"`
		Hora      string    `db:"hora"`
		CreatedAt time.Time `db:"created_at"`
	}

	var rows []bookingRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	bookings := make([]*domain.Booking, 0, len(rows))
	for _, r := range rows {
		bookings = append(bookings, &domain.Booking{
			ID:        r.ID,
			Pro:       r.Pro,
			Hora:      r.Hora,
			CreatedAt: r.CreatedAt,
		})
	}
	return bookings, nil
}
