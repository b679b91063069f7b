// Package sqlite is the durable single-file store adapter. Row order follows
// rowid, which preserves the insertion order the repositories rely on.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/reminisce-app/journal-server/internal/model"
	"github.com/reminisce-app/journal-server/internal/store"
)

// New opens (or creates) the database at path and ensures the schema.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires the adapter onto an existing connection (used by tests and
// the factory).
func NewWithDB(db *sql.DB) (store.Store, error) {
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS categories (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            name TEXT NOT NULL,
            color TEXT NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_categories_user ON categories(user_id);`,
		`CREATE TABLE IF NOT EXISTS memories (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            title TEXT NOT NULL,
            description TEXT NOT NULL,
            image_uri TEXT NOT NULL,
            date TEXT NOT NULL,
            category_id TEXT NOT NULL,
            location TEXT,
            created_at TIMESTAMP NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_memories_user ON memories(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_memories_category ON memories(category_id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("sqlite schema: %w", err)
		}
	}
	return nil
}

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Users() store.Users           { return &users{db: s.db} }
func (s *sqliteStore) Categories() store.Categories { return &categories{db: s.db} }
func (s *sqliteStore) Memories() store.Memories     { return &memories{db: s.db} }

// HealthPing implements store.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

// --- Users ---

type users struct{ db *sql.DB }

func (t *users) Create(ctx context.Context, u *model.User) (*model.User, error) {
	var exists int
	err := t.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE email=?`, u.Email).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, model.ErrDuplicateEmail
	}

	out := *u
	if out.ID == "" {
		out.ID = store.NewID(store.UserIDPrefix)
	}
	_, err = t.db.ExecContext(ctx, `INSERT INTO users (id, name, email, password) VALUES (?,?,?,?)`,
		out.ID, out.Name, out.Email, out.Password)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *users) Get(ctx context.Context, userID string) (*model.User, error) {
	return scanUser(t.db.QueryRowContext(ctx, `SELECT id, name, email, password FROM users WHERE id=?`, userID))
}

func (t *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(t.db.QueryRowContext(ctx, `SELECT id, name, email, password FROM users WHERE email=?`, email))
}

func (t *users) UpdateName(ctx context.Context, userID, name string) (*model.User, error) {
	res, err := t.db.ExecContext(ctx, `UPDATE users SET name=? WHERE id=?`, name, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return t.Get(ctx, userID)
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- Categories ---

type categories struct{ db *sql.DB }

func (t *categories) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	out := *c
	if out.ID == "" {
		out.ID = store.NewID(store.CategoryIDPrefix)
	}
	_, err := t.db.ExecContext(ctx, `INSERT INTO categories (id, user_id, name, color) VALUES (?,?,?,?)`,
		out.ID, out.UserID, out.Name, out.Color)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *categories) List(ctx context.Context, userID string) ([]*model.Category, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT id, user_id, name, color FROM categories WHERE user_id=? ORDER BY rowid`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]*model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (t *categories) GetByID(ctx context.Context, userID, categoryID string) (*model.Category, error) {
	var c model.Category
	err := t.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, color FROM categories WHERE id=? AND user_id=?`, categoryID, userID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (t *categories) Update(ctx context.Context, userID, categoryID, name, color string) (*model.Category, error) {
	res, err := t.db.ExecContext(ctx,
		`UPDATE categories SET name=?, color=? WHERE id=? AND user_id=?`, name, color, categoryID, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return t.GetByID(ctx, userID, categoryID)
}

func (t *categories) Delete(ctx context.Context, userID, categoryID string) error {
	res, err := t.db.ExecContext(ctx, `DELETE FROM categories WHERE id=? AND user_id=?`, categoryID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Memories ---

type memories struct{ db *sql.DB }

func (t *memories) Create(ctx context.Context, m *model.Memory) (*model.Memory, error) {
	out := *m
	if out.ID == "" {
		out.ID = store.NewID(store.MemoryIDPrefix)
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	loc, err := marshalLocation(out.Location)
	if err != nil {
		return nil, err
	}
	_, err = t.db.ExecContext(ctx, `
        INSERT INTO memories (id, user_id, title, description, image_uri, date, category_id, location, created_at)
        VALUES (?,?,?,?,?,?,?,?,?)`,
		out.ID, out.UserID, out.Title, out.Description, out.ImageURI, out.Date, out.CategoryID, loc, out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

const memoryColumns = `id, user_id, title, description, image_uri, date, category_id, location, created_at`

func (t *memories) List(ctx context.Context, userID string) ([]*model.Memory, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT `+memoryColumns+` FROM memories WHERE user_id=? ORDER BY rowid`, userID)
	if err != nil {
		return nil, err
	}
	return collectMemories(rows)
}

func (t *memories) GetByID(ctx context.Context, userID, memoryID string) (*model.Memory, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT `+memoryColumns+` FROM memories WHERE id=? AND user_id=?`, memoryID, userID)
	if err != nil {
		return nil, err
	}
	lst, err := collectMemories(rows)
	if err != nil {
		return nil, err
	}
	if len(lst) == 0 {
		return nil, model.ErrNotFound
	}
	return lst[0], nil
}

func (t *memories) ListByCategory(ctx context.Context, userID, categoryID string) ([]*model.Memory, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT `+memoryColumns+` FROM memories WHERE user_id=? AND category_id=? ORDER BY rowid`, userID, categoryID)
	if err != nil {
		return nil, err
	}
	return collectMemories(rows)
}

func (t *memories) Update(ctx context.Context, userID, memoryID string, req model.UpdateMemoryRequest) (*model.Memory, error) {
	cur, err := t.GetByID(ctx, userID, memoryID)
	if err != nil {
		return nil, err
	}
	req.Apply(cur)
	loc, err := marshalLocation(cur.Location)
	if err != nil {
		return nil, err
	}
	_, err = t.db.ExecContext(ctx, `
        UPDATE memories SET title=?, description=?, image_uri=?, date=?, category_id=?, location=?
        WHERE id=? AND user_id=?`,
		cur.Title, cur.Description, cur.ImageURI, cur.Date, cur.CategoryID, loc, memoryID, userID)
	if err != nil {
		return nil, err
	}
	return cur, nil
}

func (t *memories) Delete(ctx context.Context, userID, memoryID string) error {
	res, err := t.db.ExecContext(ctx, `DELETE FROM memories WHERE id=? AND user_id=?`, memoryID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func collectMemories(rows *sql.Rows) ([]*model.Memory, error) {
	defer func() { _ = rows.Close() }()

	out := make([]*model.Memory, 0)
	for rows.Next() {
		var m model.Memory
		var loc sql.NullString
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.Description, &m.ImageURI, &m.Date, &m.CategoryID, &loc, &m.CreatedAt); err != nil {
			return nil, err
		}
		if loc.Valid && loc.String != "" {
			var l model.Location
			if err := json.Unmarshal([]byte(loc.String), &l); err != nil {
				return nil, fmt.Errorf("decode location for %s: %w", m.ID, err)
			}
			m.Location = &l
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func marshalLocation(l *model.Location) (interface{}, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
