package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rfaulkner/tracklane/internal/db"
	"github.com/rfaulkner/tracklane/internal/domain"
)

// SQLiteViewStateRepo implements ViewStateRepo over a SQLite database.
// Collapsed track IDs are stored as a comma-joined string; highlights are
// transient presentation state and are never persisted.
type SQLiteViewStateRepo struct {
	db db.DBTX
}

// NewSQLiteViewStateRepo creates a new SQLiteViewStateRepo.
func NewSQLiteViewStateRepo(db db.DBTX) *SQLiteViewStateRepo {
	return &SQLiteViewStateRepo{db: db}
}

func (r *SQLiteViewStateRepo) Get(ctx context.Context, projectID, userID string) (*domain.ViewState, error) {
	query := `SELECT collapsed_ids, zoom FROM view_state WHERE project_id = ? AND user_id = ?`
	row := r.db.QueryRowContext(ctx, query, projectID, userID)

	var collapsedStr, zoomStr string
	if err := row.Scan(&collapsedStr, &zoomStr); err != nil {
		if err == sql.ErrNoRows {
			return domain.NewViewState(), nil
		}
		return nil, fmt.Errorf("scanning view state: %w", err)
	}

	v := domain.NewViewState()
	v.Zoom = domain.ViewMode(zoomStr)
	if collapsedStr != "" {
		for _, id := range strings.Split(collapsedStr, ",") {
			v.CollapsedIDs[id] = true
		}
	}
	return v, nil
}

func (r *SQLiteViewStateRepo) Put(ctx context.Context, projectID, userID string, v *domain.ViewState) error {
	ids := make([]string, 0, len(v.CollapsedIDs))
	for id := range v.CollapsedIDs {
		ids = append(ids, id)
	}
	// Deterministic storage order keeps repeated writes byte-identical.
	sort.Strings(ids)

	query := `INSERT INTO view_state (project_id, user_id, collapsed_ids, zoom, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(project_id, user_id) DO UPDATE SET
			collapsed_ids = excluded.collapsed_ids,
			zoom = excluded.zoom,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		projectID,
		userID,
		strings.Join(ids, ","),
		string(v.Zoom),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing view state: %w", err)
	}
	return nil
}

func (r *SQLiteViewStateRepo) Clear(ctx context.Context, projectID, userID string) error {
	query := `DELETE FROM view_state WHERE project_id = ? AND user_id = ?`
	_, err := r.db.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("clearing view state: %w", err)
	}
	return nil
}
