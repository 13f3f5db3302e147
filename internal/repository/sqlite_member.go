package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rfaulkner/tracklane/internal/db"
	"github.com/rfaulkner/tracklane/internal/domain"
)

// SQLiteMemberRepo implements MemberRepo over a SQLite database.
type SQLiteMemberRepo struct {
	db db.DBTX
}

// NewSQLiteMemberRepo creates a new SQLiteMemberRepo.
func NewSQLiteMemberRepo(db db.DBTX) *SQLiteMemberRepo {
	return &SQLiteMemberRepo{db: db}
}

func (r *SQLiteMemberRepo) Upsert(ctx context.Context, m *domain.ProjectMember) error {
	query := `INSERT INTO project_members (project_id, user_id, role, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(project_id, user_id) DO UPDATE SET role = excluded.role`
	_, err := r.db.ExecContext(ctx, query,
		m.ProjectID,
		m.UserID,
		string(m.Role),
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting project member: %w", err)
	}
	return nil
}

func (r *SQLiteMemberRepo) Get(ctx context.Context, projectID, userID string) (*domain.ProjectMember, error) {
	query := `SELECT project_id, user_id, role, created_at FROM project_members
		WHERE project_id = ? AND user_id = ?`
	row := r.db.QueryRowContext(ctx, query, projectID, userID)

	var m domain.ProjectMember
	var roleStr, createdAtStr string
	if err := row.Scan(&m.ProjectID, &m.UserID, &roleStr, &createdAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project member: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project member: %w", err)
	}
	m.Role = domain.MemberRole(roleStr)

	var parseErr error
	m.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return &m, nil
}

func (r *SQLiteMemberRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectMember, error) {
	query := `SELECT project_id, user_id, role, created_at FROM project_members
		WHERE project_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project members: %w", err)
	}
	defer rows.Close()

	var members []*domain.ProjectMember
	for rows.Next() {
		var m domain.ProjectMember
		var roleStr, createdAtStr string
		if err := rows.Scan(&m.ProjectID, &m.UserID, &roleStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning project member row: %w", err)
		}
		m.Role = domain.MemberRole(roleStr)
		var parseErr error
		m.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing created_at: %w", parseErr)
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project members: %w", err)
	}
	return members, nil
}

func (r *SQLiteMemberRepo) Delete(ctx context.Context, projectID, userID string) error {
	query := `DELETE FROM project_members WHERE project_id = ? AND user_id = ?`
	_, err := r.db.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("deleting project member: %w", err)
	}
	return nil
}
