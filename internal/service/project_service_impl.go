package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rfaulkner/tracklane/internal/db"
	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	members  repository.MemberRepo
	uow      db.UnitOfWork
}

func NewProjectService(projects repository.ProjectRepo, members repository.MemberRepo, uow db.UnitOfWork) ProjectService {
	return &projectService{projects: projects, members: members, uow: uow}
}

// Create stores the project and makes ownerID its owner in one
// transaction.
func (s *projectService) Create(ctx context.Context, p *domain.Project, ownerID string) error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Msg: "project name is required"}
	}
	if err := p.ValidateShortID(); err != nil {
		return validationErr(err)
	}
	if ownerID == "" {
		return &ValidationError{Field: "owner", Msg: "project owner is required"}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProjectRepo(tx).Create(ctx, p); err != nil {
			return err
		}
		owner := &domain.ProjectMember{
			ProjectID: p.ID,
			UserID:    ownerID,
			Role:      domain.RoleOwner,
			CreatedAt: now,
		}
		return repository.NewSQLiteMemberRepo(tx).Upsert(ctx, owner)
	})
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) GetByShortID(ctx context.Context, shortID string) (*domain.Project, error) {
	return s.projects.GetByShortID(ctx, shortID)
}

func (s *projectService) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, includeArchived)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Msg: "project name is required"}
	}
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) Archive(ctx context.Context, id string) error {
	return s.projects.Archive(ctx, id)
}

func (s *projectService) Delete(ctx context.Context, id string, force bool) error {
	if !force {
		p, err := s.projects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p.Status != domain.ProjectArchived {
			return fmt.Errorf("project must be archived before deletion (use --force to override)")
		}
	}
	return s.projects.Delete(ctx, id)
}

func (s *projectService) AddMember(ctx context.Context, projectID, userID string, role domain.MemberRole) error {
	switch role {
	case domain.RoleOwner, domain.RoleEditor, domain.RoleViewer:
	default:
		return &ValidationError{Field: "role", Msg: fmt.Sprintf("unknown role %q", role)}
	}
	m := &domain.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	return s.members.Upsert(ctx, m)
}

func (s *projectService) RemoveMember(ctx context.Context, projectID, userID string) error {
	return s.members.Delete(ctx, projectID, userID)
}

func (s *projectService) Members(ctx context.Context, projectID string) ([]*domain.ProjectMember, error) {
	return s.members.ListByProject(ctx, projectID)
}
