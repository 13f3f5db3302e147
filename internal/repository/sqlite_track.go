package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rfaulkner/tracklane/internal/db"
	"github.com/rfaulkner/tracklane/internal/domain"
)

// trackColumns is the canonical SELECT column list for tracks.
const trackColumns = `id, project_id, parent_id, name, color, order_index, category,
		include_in_roadmap, visibility, deleted_at, created_at, updated_at`

// SQLiteTrackRepo implements TrackRepo over a SQLite database.
type SQLiteTrackRepo struct {
	db db.DBTX
}

// NewSQLiteTrackRepo creates a new SQLiteTrackRepo.
func NewSQLiteTrackRepo(db db.DBTX) *SQLiteTrackRepo {
	return &SQLiteTrackRepo{db: db}
}

func (r *SQLiteTrackRepo) Create(ctx context.Context, t *domain.Track) error {
	query := `INSERT INTO tracks (id, project_id, parent_id, name, color, order_index, category,
		include_in_roadmap, visibility, deleted_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.ParentID, // *string: nil becomes SQL NULL
		t.Name,
		nullableStrToValue(t.Color),
		t.OrderIndex,
		string(t.Category),
		boolToInt(t.IncludeInRoadmap),
		string(t.Visibility),
		nullableTimeToString(t.DeletedAt, time.RFC3339),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting track: %w", err)
	}
	return nil
}

func (r *SQLiteTrackRepo) GetByID(ctx context.Context, id string) (*domain.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE id = ?`
	return r.scanTrack(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteTrackRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks
		WHERE project_id = ? AND deleted_at IS NULL ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tracks by project: %w", err)
	}
	defer rows.Close()
	return r.scanTracks(rows)
}

func (r *SQLiteTrackRepo) ListRoots(ctx context.Context, projectID string) ([]*domain.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks
		WHERE project_id = ? AND parent_id IS NULL AND deleted_at IS NULL ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing root tracks: %w", err)
	}
	defer rows.Close()
	return r.scanTracks(rows)
}

func (r *SQLiteTrackRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks
		WHERE parent_id = ? AND deleted_at IS NULL ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child tracks: %w", err)
	}
	defer rows.Close()
	return r.scanTracks(rows)
}

func (r *SQLiteTrackRepo) ListTrashed(ctx context.Context, projectID string) ([]*domain.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks
		WHERE project_id = ? AND deleted_at IS NOT NULL ORDER BY deleted_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing trashed tracks: %w", err)
	}
	defer rows.Close()
	return r.scanTracks(rows)
}

func (r *SQLiteTrackRepo) Update(ctx context.Context, t *domain.Track) error {
	query := `UPDATE tracks SET project_id = ?, parent_id = ?, name = ?, color = ?,
		order_index = ?, category = ?, include_in_roadmap = ?, visibility = ?,
		deleted_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.ProjectID,
		t.ParentID,
		t.Name,
		nullableStrToValue(t.Color),
		t.OrderIndex,
		string(t.Category),
		boolToInt(t.IncludeInRoadmap),
		string(t.Visibility),
		nullableTimeToString(t.DeletedAt, time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating track: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating track: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("track: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteTrackRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	query := `DELETE FROM tracks WHERE deleted_at IS NOT NULL AND deleted_at < ?`
	res, err := r.db.ExecContext(ctx, query, cutoff.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("purging expired tracks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged tracks: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteTrackRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tracks WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting track: %w", err)
	}
	return nil
}

// scanTrack scans a single track from a *sql.Row.
func (r *SQLiteTrackRepo) scanTrack(row *sql.Row) (*domain.Track, error) {
	var t domain.Track
	var categoryStr, visibilityStr, createdAtStr, updatedAtStr string
	var parentID, color, deletedAtStr sql.NullString
	var includeInt int

	err := row.Scan(
		&t.ID, &t.ProjectID, &parentID, &t.Name, &color, &t.OrderIndex, &categoryStr,
		&includeInt, &visibilityStr, &deletedAtStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("track: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning track: %w", err)
	}
	return r.populateTrack(&t, categoryStr, visibilityStr, createdAtStr, updatedAtStr,
		parentID, color, deletedAtStr, includeInt)
}

// scanTracks scans multiple tracks from *sql.Rows.
func (r *SQLiteTrackRepo) scanTracks(rows *sql.Rows) ([]*domain.Track, error) {
	var tracks []*domain.Track
	for rows.Next() {
		var t domain.Track
		var categoryStr, visibilityStr, createdAtStr, updatedAtStr string
		var parentID, color, deletedAtStr sql.NullString
		var includeInt int

		err := rows.Scan(
			&t.ID, &t.ProjectID, &parentID, &t.Name, &color, &t.OrderIndex, &categoryStr,
			&includeInt, &visibilityStr, &deletedAtStr, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning track row: %w", err)
		}
		track, err := r.populateTrack(&t, categoryStr, visibilityStr, createdAtStr, updatedAtStr,
			parentID, color, deletedAtStr, includeInt)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tracks: %w", err)
	}
	return tracks, nil
}

// populateTrack fills in parsed fields on a Track after scanning raw strings.
func (r *SQLiteTrackRepo) populateTrack(
	t *domain.Track,
	categoryStr, visibilityStr, createdAtStr, updatedAtStr string,
	parentID, color, deletedAtStr sql.NullString,
	includeInt int,
) (*domain.Track, error) {
	t.Category = domain.TrackCategory(categoryStr)
	t.Visibility = domain.TrackVisibility(visibilityStr)
	t.IncludeInRoadmap = intToBool(includeInt)

	if parentID.Valid {
		t.ParentID = &parentID.String
	}
	if color.Valid {
		t.Color = &color.String
	}
	t.DeletedAt = parseNullableTime(deletedAtStr, time.RFC3339)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return t, nil
}
