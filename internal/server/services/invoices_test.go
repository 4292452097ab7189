package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/server/config"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceService_CreateNumbersInTx(t *testing.T) {
	db, mock := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.clients.items["c-1"] = &models.Client{ID: "c-1"}
	s := NewInvoiceService(db, rm, &config.Config{})
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	first, err := s.Create(ctx, &models.Invoice{ClientID: "c-1", Amount: 100, DueDate: "2024-02-01"})
	require.NoError(t, err)
	second, err := s.Create(ctx, &models.Invoice{ClientID: "c-1", Amount: 50, DueDate: "2024-03-01"})
	require.NoError(t, err)

	assert.Equal(t, "INV-00001", first.InvoiceNumber)
	assert.Equal(t, "INV-00002", second.InvoiceNumber)
	assert.Equal(t, models.InvoiceStatusPending, first.Status)
	assert.NotNil(t, first.Items)
	assert.Equal(t, 2, rm.invoices.locks)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceService_CreateRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.clients.items["c-1"] = &models.Client{ID: "c-1"}
	rm.invoices.nextErr = errors.New("db down")
	s := NewInvoiceService(db, rm, &config.Config{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.Create(context.Background(), &models.Invoice{ClientID: "c-1", Amount: 1, DueDate: "d"})
	assert.ErrorIs(t, err, common.ErrStorage)
	assert.Empty(t, rm.invoices.items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceService_CreateRequiresClient(t *testing.T) {
	db, mock := newSQLMockDB(t)
	s := NewInvoiceService(db, newFakeRepoManager(), &config.Config{})

	_, err := s.Create(context.Background(), &models.Invoice{ClientID: "missing"})
	assert.ErrorIs(t, err, common.ErrClientNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceService_UpdateKeepsNumber(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.invoices.items["i-1"] = &models.Invoice{ID: "i-1", InvoiceNumber: "INV-00007", Status: "pending"}
	s := NewInvoiceService(db, rm, &config.Config{})
	ctx := context.Background()

	upd, err := s.Update(ctx, "i-1", &models.Invoice{ClientID: "c-1", Amount: 20, Status: "paid", DueDate: "d"})
	require.NoError(t, err)
	assert.Equal(t, "INV-00007", upd.InvoiceNumber)
	assert.Equal(t, "paid", upd.Status)

	_, err = s.Update(ctx, "nope", &models.Invoice{})
	assert.ErrorIs(t, err, common.ErrInvoiceNotFound)
	_, err = s.Get(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrInvoiceNotFound)
	require.NoError(t, s.Delete(ctx, "i-1"))
	assert.ErrorIs(t, s.Delete(ctx, "i-1"), common.ErrInvoiceNotFound)
}
