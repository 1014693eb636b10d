// Package notes provides the PostgreSQL-backed note store with
// owner-scoped queries.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dreamnotes/internal/common"
	"github.com/dmitrijs2005/dreamnotes/internal/dbx"
	"github.com/dmitrijs2005/dreamnotes/internal/server/models"
)

// PostgresRepository implements note storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a note and fills in the generated id and timestamps.
func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	query := `
		INSERT INTO notes (owner_id, title, content, tags)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		note.OwnerID, note.Title, note.Content, note.Tags).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

// Get returns the note with the given id if it belongs to ownerID.
// A missing row and a row owned by someone else both come back as
// common.ErrNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id, ownerID int64) (*models.Note, error) {
	query := `
		SELECT id, owner_id, title, content, tags, created_at, updated_at FROM notes
		WHERE id = $1 AND owner_id = $2
	`
	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&note.ID, &note.OwnerID, &note.Title, &note.Content, &note.Tags,
		&note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

// ListByOwner returns ownerID's notes in creation order, paginated by
// offset/limit.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*models.Note, error) {
	query := `
		SELECT id, owner_id, title, content, tags, created_at, updated_at FROM notes
		WHERE owner_id = $1
		ORDER BY created_at, id
		OFFSET $2 LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

// ListByTag returns ownerID's notes whose tag list contains tag as a whole
// token. The stored string is split on the delimiter and compared for
// equality, so "art" never matches "cart" or "art2".
func (r *PostgresRepository) ListByTag(ctx context.Context, ownerID int64, tag string, offset, limit int) ([]*models.Note, error) {
	query := `
		SELECT id, owner_id, title, content, tags, created_at, updated_at FROM notes
		WHERE owner_id = $1 AND $2 = ANY(string_to_array(tags, ','))
		ORDER BY created_at, id
		OFFSET $3 LIMIT $4
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, tag, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

// Update writes title, content, and tags of the owner-scoped row and
// refreshes updated_at. Scoped miss returns common.ErrNotFound.
func (r *PostgresRepository) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	query := `
		UPDATE notes SET title = $3, content = $4, tags = $5, updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.OwnerID, note.Title, note.Content, note.Tags).
		Scan(&note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

// Delete permanently removes the owner-scoped row. Scoped miss returns
// common.ErrNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query := `
		DELETE FROM notes
		WHERE id = $1 AND owner_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanNotes(rows *sql.Rows) ([]*models.Note, error) {
	var result []*models.Note
	for rows.Next() {
		var item models.Note
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Title, &item.Content, &item.Tags,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
