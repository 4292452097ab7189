// Package projects provides the PostgreSQL-backed project repository.
// Team members are stored as a JSONB array of user ids.
package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/dbx"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
)

const columns = `id, name, client_id, description, start_date, end_date, status, budget, team_members, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*models.Project, error) {
	p := &models.Project{}
	var members []byte
	if err := s.Scan(&p.ID, &p.Name, &p.ClientID, &p.Description, &p.StartDate, &p.EndDate,
		&p.Status, &p.Budget, &members, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.TeamMembers = []string{}
	if len(members) > 0 {
		if err := json.Unmarshal(members, &p.TeamMembers); err != nil {
			return nil, fmt.Errorf("decode team_members: %w", err)
		}
	}
	return p, nil
}

func encodeMembers(m []string) (string, error) {
	if m == nil {
		m = []string{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	members, err := encodeMembers(p.TeamMembers)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO projects (id, name, client_id, description, start_date, end_date, status, budget, team_members)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`

	err = r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.ClientID, p.Description, p.StartDate, p.EndDate, p.Status, p.Budget, members).
		Scan(&p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if p.TeamMembers == nil {
		p.TeamMembers = []string{}
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM projects ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Project) (*models.Project, error) {
	members, err := encodeMembers(p.TeamMembers)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE projects
		 SET name = $2, client_id = $3, description = $4, start_date = $5, end_date = $6,
		     status = $7, budget = $8, team_members = $9
		 WHERE id = $1
		 RETURNING ` + columns

	updated, err := scanProject(r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.ClientID, p.Description, p.StartDate, p.EndDate, p.Status, p.Budget, members))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
