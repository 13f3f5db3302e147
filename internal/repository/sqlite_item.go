package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rfaulkner/tracklane/internal/db"
	"github.com/rfaulkner/tracklane/internal/domain"
)

// itemColumns is the canonical SELECT column list for roadmap_items.
const itemColumns = `id, track_id, type, title, description, start_date, end_date,
		status, created_at, updated_at`

// SQLiteItemRepo implements ItemRepo over a SQLite database.
type SQLiteItemRepo struct {
	db db.DBTX
}

// NewSQLiteItemRepo creates a new SQLiteItemRepo.
func NewSQLiteItemRepo(db db.DBTX) *SQLiteItemRepo {
	return &SQLiteItemRepo{db: db}
}

func (r *SQLiteItemRepo) Create(ctx context.Context, i *domain.RoadmapItem) error {
	query := `INSERT INTO roadmap_items (id, track_id, type, title, description,
		start_date, end_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		i.ID,
		i.TrackID,
		string(i.Type),
		i.Title,
		i.Description,
		nullableTimeToString(i.StartDate, dateLayout),
		nullableTimeToString(i.EndDate, dateLayout),
		string(i.Status),
		i.CreatedAt.Format(time.RFC3339),
		i.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting roadmap item: %w", err)
	}
	return nil
}

func (r *SQLiteItemRepo) GetByID(ctx context.Context, id string) (*domain.RoadmapItem, error) {
	query := `SELECT ` + itemColumns + ` FROM roadmap_items WHERE id = ?`
	return r.scanItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteItemRepo) ListByTrack(ctx context.Context, trackID string) ([]*domain.RoadmapItem, error) {
	query := `SELECT ` + itemColumns + ` FROM roadmap_items
		WHERE track_id = ? ORDER BY start_date IS NULL, start_date, created_at`
	rows, err := r.db.QueryContext(ctx, query, trackID)
	if err != nil {
		return nil, fmt.Errorf("listing items by track: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLiteItemRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.RoadmapItem, error) {
	query := `SELECT i.id, i.track_id, i.type, i.title, i.description, i.start_date, i.end_date,
		i.status, i.created_at, i.updated_at
		FROM roadmap_items i
		JOIN tracks t ON i.track_id = t.id
		WHERE t.project_id = ? AND t.deleted_at IS NULL
		ORDER BY i.start_date IS NULL, i.start_date, i.created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing items by project: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLiteItemRepo) Update(ctx context.Context, i *domain.RoadmapItem) error {
	query := `UPDATE roadmap_items SET track_id = ?, type = ?, title = ?, description = ?,
		start_date = ?, end_date = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		i.TrackID,
		string(i.Type),
		i.Title,
		i.Description,
		nullableTimeToString(i.StartDate, dateLayout),
		nullableTimeToString(i.EndDate, dateLayout),
		string(i.Status),
		i.UpdatedAt.Format(time.RFC3339),
		i.ID,
	)
	if err != nil {
		return fmt.Errorf("updating roadmap item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating roadmap item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("roadmap item: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteItemRepo) Reassign(ctx context.Context, itemID, trackID string, now time.Time) error {
	query := `UPDATE roadmap_items SET track_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, trackID, now.Format(time.RFC3339), itemID)
	if err != nil {
		return fmt.Errorf("reassigning roadmap item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reassigning roadmap item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("roadmap item: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteItemRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM roadmap_items WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting roadmap item: %w", err)
	}
	return nil
}

// scanItem scans a single item from a *sql.Row.
func (r *SQLiteItemRepo) scanItem(row *sql.Row) (*domain.RoadmapItem, error) {
	var i domain.RoadmapItem
	var typeStr, statusStr, createdAtStr, updatedAtStr string
	var startStr, endStr sql.NullString

	err := row.Scan(
		&i.ID, &i.TrackID, &typeStr, &i.Title, &i.Description,
		&startStr, &endStr, &statusStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("roadmap item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning roadmap item: %w", err)
	}
	return r.populateItem(&i, typeStr, statusStr, createdAtStr, updatedAtStr, startStr, endStr)
}

// scanItems scans multiple items from *sql.Rows.
func (r *SQLiteItemRepo) scanItems(rows *sql.Rows) ([]*domain.RoadmapItem, error) {
	var items []*domain.RoadmapItem
	for rows.Next() {
		var i domain.RoadmapItem
		var typeStr, statusStr, createdAtStr, updatedAtStr string
		var startStr, endStr sql.NullString

		err := rows.Scan(
			&i.ID, &i.TrackID, &typeStr, &i.Title, &i.Description,
			&startStr, &endStr, &statusStr, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning roadmap item row: %w", err)
		}
		item, err := r.populateItem(&i, typeStr, statusStr, createdAtStr, updatedAtStr, startStr, endStr)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roadmap items: %w", err)
	}
	return items, nil
}

// populateItem fills in parsed fields on a RoadmapItem after scanning raw strings.
func (r *SQLiteItemRepo) populateItem(
	i *domain.RoadmapItem,
	typeStr, statusStr, createdAtStr, updatedAtStr string,
	startStr, endStr sql.NullString,
) (*domain.RoadmapItem, error) {
	i.Type = domain.ItemType(typeStr)
	i.Status = domain.ItemStatus(statusStr)
	i.StartDate = parseNullableTime(startStr, dateLayout)
	i.EndDate = parseNullableTime(endStr, dateLayout)

	var parseErr error
	i.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	i.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return i, nil
}
