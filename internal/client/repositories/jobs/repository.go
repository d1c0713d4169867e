// Package jobs keeps the last fetched job roster on disk so it can still be
// shown when the service is unreachable.
package jobs

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/meetrec/internal/client/models"
	"github.com/dmitrijs2005/meetrec/internal/dbx"
)

// Repository stores a roster snapshot. The snapshot is always replaced as a
// whole, never patched.
type Repository interface {
	ReplaceAll(ctx context.Context, jobs []models.Job) error
	GetAll(ctx context.Context) ([]models.Job, error)
	Clear(ctx context.Context) error
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceAll deletes the previous snapshot and writes jobs in order. Bind
// the repository to a transaction to make the swap atomic.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, jobs []models.Job) error {
	if err := r.Clear(ctx); err != nil {
		return err
	}

	query := `INSERT INTO jobs (position, id, meeting_url, meeting_slug, created_at, status, artifact_link, owner_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i, j := range jobs {
		createdAt := ""
		if !j.CreatedAt.IsZero() {
			createdAt = j.CreatedAt.UTC().Format(time.RFC3339Nano)
		}
		_, err := r.db.ExecContext(ctx, query, i, j.ID, j.MeetingURL, j.MeetingSlug, createdAt, j.Status.Raw, j.ArtifactLink, j.OwnerID)
		if err != nil {
			return fmt.Errorf("failed to insert job[%s]: %w", j.ID, err)
		}
	}
	return nil
}

// GetAll returns the snapshot in the order it was stored.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Job, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, meeting_url, meeting_slug, created_at, status, artifact_link, owner_id
		FROM jobs ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to select jobs: %w", err)
	}
	defer rows.Close()

	var result []models.Job
	for rows.Next() {
		var (
			j         models.Job
			createdAt string
			status    string
		)
		if err := rows.Scan(&j.ID, &j.MeetingURL, &j.MeetingSlug, &createdAt, &status, &j.ArtifactLink, &j.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		if createdAt != "" {
			if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
				j.CreatedAt = t
			}
		}
		j.Status = models.ParseStatus(status)
		j.Normalize()
		result = append(result, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM jobs`); err != nil {
		return fmt.Errorf("failed to clear jobs: %w", err)
	}
	return nil
}

// Cache keeps the roster snapshot in a *sql.DB, swapping it in a single
// transaction.
type Cache struct {
	db *sql.DB
}

func NewCache(db *sql.DB) *Cache {
	return &Cache{db: db}
}

func (c *Cache) Save(ctx context.Context, jobs []models.Job) error {
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return NewSQLiteRepository(tx).ReplaceAll(ctx, jobs)
	})
}

func (c *Cache) Load(ctx context.Context) ([]models.Job, error) {
	return NewSQLiteRepository(c.db).GetAll(ctx)
}

func (c *Cache) Clear(ctx context.Context) error {
	return NewSQLiteRepository(c.db).Clear(ctx)
}
