// Package invoices provides the PostgreSQL-backed invoice repository.
package invoices

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/dbx"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
)

const (
	columns = `id, invoice_number, client_id, project_id, amount, status, due_date, items, notes, attachment_key, created_at`

	// NumberPrefix starts every generated invoice number.
	NumberPrefix = "INV-"
	numberFormat = NumberPrefix + "%05d"

	// numberingLockKey is the pg_advisory_xact_lock key guarding NextNumber.
	numberingLockKey = 0x494e56
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInvoice(s scanner) (*models.Invoice, error) {
	inv := &models.Invoice{}
	var items []byte
	if err := s.Scan(&inv.ID, &inv.InvoiceNumber, &inv.ClientID, &inv.ProjectID, &inv.Amount,
		&inv.Status, &inv.DueDate, &items, &inv.Notes, &inv.AttachmentKey, &inv.CreatedAt); err != nil {
		return nil, err
	}
	inv.Items = []models.InvoiceItem{}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &inv.Items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
	}
	return inv, nil
}

func encodeItems(items []models.InvoiceItem) (string, error) {
	if items == nil {
		items = []models.InvoiceItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *PostgresRepository) Create(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	items, err := encodeItems(inv.Items)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO invoices (id, invoice_number, client_id, project_id, amount, status, due_date, items, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`

	err = r.db.QueryRowContext(ctx, query,
		inv.ID, inv.InvoiceNumber, inv.ClientID, inv.ProjectID, inv.Amount, inv.Status, inv.DueDate, items, inv.Notes).
		Scan(&inv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if inv.Items == nil {
		inv.Items = []models.InvoiceItem{}
	}
	return inv, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM invoices ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return inv, nil
}

// Update replaces the editable fields. The invoice number and the
// attachment key are left untouched.
func (r *PostgresRepository) Update(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	items, err := encodeItems(inv.Items)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE invoices
		 SET client_id = $2, project_id = $3, amount = $4, status = $5, due_date = $6, items = $7, notes = $8
		 WHERE id = $1
		 RETURNING ` + columns

	updated, err := scanInvoice(r.db.QueryRowContext(ctx, query,
		inv.ID, inv.ClientID, inv.ProjectID, inv.Amount, inv.Status, inv.DueDate, items, inv.Notes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
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

func (r *PostgresRepository) LockNumbering(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, numberingLockKey); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// NextNumber returns the number following the highest one issued so far.
// Numbers freed by deletes are not reused.
func (r *PostgresRepository) NextNumber(ctx context.Context) (string, error) {
	query :=
		`SELECT COALESCE(MAX(CAST(SUBSTRING(invoice_number FROM 5) AS INTEGER)), 0)
		 FROM invoices
		 WHERE invoice_number ~ '^INV-[0-9]+$'`

	var last int
	if err := r.db.QueryRowContext(ctx, query).Scan(&last); err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return fmt.Sprintf(numberFormat, last+1), nil
}

func (r *PostgresRepository) SetAttachmentKey(ctx context.Context, id, key string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE invoices SET attachment_key = $2 WHERE id = $1`, id, key)
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

func (r *PostgresRepository) CountByStatus(ctx context.Context, statuses ...string) (int, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(statuses))
	args := make([]any, len(statuses))
	for i, s := range statuses {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = s
	}
	query := `SELECT COUNT(*) FROM invoices WHERE status IN (` + strings.Join(placeholders, ", ") + `)`

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) SumAmountByStatus(ctx context.Context, status string) (float64, error) {
	var sum float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE status = $1`, status).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return sum, nil
}
