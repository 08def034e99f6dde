package service

import (
	"context"

	"github.com/andy/tuitiondesk/internal/domain"
	"github.com/andy/tuitiondesk/internal/logger"
)

// InvoiceLister is the read side of the persisted invoice collection.
type InvoiceLister interface {
	List(ctx context.Context, memberID string) ([]domain.Invoice, error)
}

// ListService fetches persisted invoices and derives the list view's
// filtered rows and aggregate revenue statistics.
type ListService interface {
	// FetchInvoices retrieves the invoices scoped to the configured member.
	FetchInvoices(ctx context.Context) ([]domain.Invoice, error)

	// Filter applies the search term and status filter, preserving order.
	Filter(invoices []domain.Invoice, searchTerm, statusFilter string) []domain.Invoice

	// Stats reduces the full fetched set; pass the unfiltered collection.
	Stats(invoices []domain.Invoice) domain.RevenueStats
}

type listService struct {
	lister           InvoiceLister
	memberID         string
	conversionFactor float64
	log              *logger.Logger
}

// NewListService creates a new invoice list service
func NewListService(lister InvoiceLister, memberID string, conversionFactor float64, log *logger.Logger) ListService {
	return &listService{
		lister:           lister,
		memberID:         memberID,
		conversionFactor: conversionFactor,
		log:              log,
	}
}

func (s *listService) FetchInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return s.lister.List(ctx, s.memberID)
}

func (s *listService) Filter(invoices []domain.Invoice, searchTerm, statusFilter string) []domain.Invoice {
	return domain.FilterInvoices(invoices, searchTerm, statusFilter)
}

func (s *listService) Stats(invoices []domain.Invoice) domain.RevenueStats {
	return domain.ComputeRevenueStats(invoices, s.conversionFactor)
}
