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

type ClientService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewClientService(db *sql.DB, m repomanager.RepositoryManager) *ClientService {
	return &ClientService{db: db, repomanager: m}
}

func (s *ClientService) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	c.ID = uuid.NewString()
	if c.Status == "" {
		c.Status = models.ClientStatusActive
	}
	created, err := s.repomanager.Clients(s.db).Create(ctx, c)
	if err != nil {
		return nil, storageErr(err)
	}
	return created, nil
}

func (s *ClientService) List(ctx context.Context) ([]*models.Client, error) {
	list, err := s.repomanager.Clients(s.db).List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	c, err := s.repomanager.Clients(s.db).Get(ctx, id)
	return c, clientErr(err)
}

func (s *ClientService) Update(ctx context.Context, id string, c *models.Client) (*models.Client, error) {
	c.ID = id
	if c.Status == "" {
		c.Status = models.ClientStatusActive
	}
	updated, err := s.repomanager.Clients(s.db).Update(ctx, c)
	return updated, clientErr(err)
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	return clientErr(s.repomanager.Clients(s.db).Delete(ctx, id))
}

func clientErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrClientNotFound
	default:
		return storageErr(err)
	}
}
