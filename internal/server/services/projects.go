package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager) *ProjectService {
	return &ProjectService{db: db, repomanager: m}
}

// Create stores a project for an existing client.
func (s *ProjectService) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	if _, err := s.repomanager.Clients(s.db).Get(ctx, p.ClientID); err != nil {
		return nil, clientErr(err)
	}

	p.ID = uuid.NewString()
	normalizeProject(p)

	created, err := s.repomanager.Projects(s.db).Create(ctx, p)
	if err != nil {
		return nil, storageErr(err)
	}
	return created, nil
}

func (s *ProjectService) List(ctx context.Context) ([]*models.Project, error) {
	list, err := s.repomanager.Projects(s.db).List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	p, err := s.repomanager.Projects(s.db).Get(ctx, id)
	return p, projectErr(err)
}

// Update replaces the editable fields. The client reference is not
// re-checked.
func (s *ProjectService) Update(ctx context.Context, id string, p *models.Project) (*models.Project, error) {
	p.ID = id
	normalizeProject(p)
	updated, err := s.repomanager.Projects(s.db).Update(ctx, p)
	return updated, projectErr(err)
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return projectErr(s.repomanager.Projects(s.db).Delete(ctx, id))
}

func normalizeProject(p *models.Project) {
	if p.Status == "" {
		p.Status = models.ProjectStatusActive
	}
	if p.TeamMembers == nil {
		p.TeamMembers = []string{}
	}
}

func projectErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrProjectNotFound
	default:
		return storageErr(err)
	}
}
