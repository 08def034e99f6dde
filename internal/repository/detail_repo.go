package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy/tuitiondesk/internal/domain"
	"github.com/andy/tuitiondesk/internal/logger"
	supa "github.com/nedpals/supabase-go"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

// InvoiceDetailRepository reads a single stored invoice and its items from
// the hosted database. This is the alternate data path for the detail
// view; the backend REST API never serves it.
type InvoiceDetailRepository interface {
	GetInvoice(ctx context.Context, id string) (*domain.InvoiceRecord, error)
	GetItems(ctx context.Context, invoiceID string) ([]domain.InvoiceItemRecord, error)
}

type supabaseDetailRepo struct {
	client *supa.Client
	log    *logger.Logger
}

// NewSupabaseDetailRepo creates a detail repository over a supabase project.
func NewSupabaseDetailRepo(url, key string, log *logger.Logger) (InvoiceDetailRepository, error) {
	client := supa.CreateClient(url, key)
	if client == nil {
		return nil, fmt.Errorf("failed to create supabase client")
	}
	return &supabaseDetailRepo{client: client, log: log}, nil
}

func (r *supabaseDetailRepo) GetInvoice(ctx context.Context, id string) (*domain.InvoiceRecord, error) {
	var records []domain.InvoiceRecord
	err := r.client.DB.From("invoices").
		Select("*").
		Eq("id", id).
		ExecuteWithContext(ctx, &records)
	if err != nil {
		r.log.Errorw("invoice detail query failed", "invoice_id", id, "error", err)
		return nil, fmt.Errorf("load invoice %s: %w", id, err)
	}
	if len(records) == 0 {
		return nil, ErrInvoiceNotFound
	}
	return &records[0], nil
}

func (r *supabaseDetailRepo) GetItems(ctx context.Context, invoiceID string) ([]domain.InvoiceItemRecord, error) {
	var items []domain.InvoiceItemRecord
	err := r.client.DB.From("invoice_items").
		Select("*").
		Eq("invoice_id", invoiceID).
		ExecuteWithContext(ctx, &items)
	if err != nil {
		r.log.Errorw("invoice items query failed", "invoice_id", invoiceID, "error", err)
		return nil, fmt.Errorf("load items for invoice %s: %w", invoiceID, err)
	}
	return items, nil
}
