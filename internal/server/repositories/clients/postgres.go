// Package clients provides the PostgreSQL-backed client repository.
package clients

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/dbx"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
)

const columns = `id, name, email, phone, company, address, status, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(s scanner) (*models.Client, error) {
	c := &models.Client{}
	if err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Address, &c.Status, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	query :=
		`INSERT INTO clients (id, name, email, phone, company, address, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Address, c.Status).Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM clients ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// Update replaces the editable fields; id and created_at are kept.
func (r *PostgresRepository) Update(ctx context.Context, c *models.Client) (*models.Client, error) {
	query :=
		`UPDATE clients
		 SET name = $2, email = $3, phone = $4, company = $5, address = $6, status = $7
		 WHERE id = $1
		 RETURNING ` + columns

	updated, err := scanClient(r.db.QueryRowContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Address, c.Status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
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
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
