package service

import (
	"context"
	"sync"
	"time"

	"github.com/andy/tuitiondesk/internal/api"
	"github.com/andy/tuitiondesk/internal/domain"
	"github.com/andy/tuitiondesk/internal/draft"
	"github.com/andy/tuitiondesk/internal/logger"
)

// DraftSubmitter performs the single network write for a draft.
type DraftSubmitter interface {
	Submit(ctx context.Context, studentID string, req api.SubmitRequest) (*api.Receipt, error)
}

// DraftService owns the transient invoice draft: form fields, the line
// item store, derived totals, and submission.
type DraftService interface {
	// Draft returns a snapshot of the current draft state.
	Draft() domain.InvoiceDraft

	// SelectStudent sets the student reference and denormalizes the name.
	SelectStudent(s domain.Student)

	SetIssueDate(date string)
	SetDueDate(date string)
	SetNotes(notes string)

	// Line item operations; each returns the new item snapshot.
	AddItem() []domain.LineItem
	RemoveItem(id int64) []domain.LineItem
	UpdateItem(id int64, field draft.Field, value string) []domain.LineItem
	Items() []domain.LineItem

	// Derived totals, recomputed from the items on every call.
	Subtotal() float64
	Tax() float64
	Total() float64

	// Submit validates locally, then serializes and posts the draft.
	// An empty student selection never reaches the network.
	Submit(ctx context.Context) (*api.Receipt, error)

	// Reset discards the draft and starts a fresh one with a single
	// default line item and today's issue date.
	Reset()
}

type draftService struct {
	submitter        DraftSubmitter
	taxRate          float64
	conversionFactor float64
	log              *logger.Logger

	mu          sync.Mutex
	store       *draft.Store
	studentID   string
	studentName string
	issueDate   string
	dueDate     string
	notes       string
}

// NewDraftService creates a draft service with one default line item,
// matching the empty form's initial row.
func NewDraftService(submitter DraftSubmitter, taxRate, conversionFactor float64, log *logger.Logger) DraftService {
	s := &draftService{
		submitter:        submitter,
		taxRate:          taxRate,
		conversionFactor: conversionFactor,
		log:              log,
	}
	s.reset()
	return s
}

func (s *draftService) reset() {
	s.store = draft.NewStore(s.conversionFactor)
	s.store.AddItem()
	s.studentID = ""
	s.studentName = ""
	s.issueDate = time.Now().Format("2006-01-02")
	s.dueDate = ""
	s.notes = ""
}

func (s *draftService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *draftService) Draft() domain.InvoiceDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.InvoiceDraft{
		StudentID:   s.studentID,
		StudentName: s.studentName,
		IssueDate:   s.issueDate,
		DueDate:     s.dueDate,
		Notes:       s.notes,
		Items:       s.store.Items(),
	}
}

func (s *draftService) SelectStudent(st domain.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.studentID = st.ID
	s.studentName = st.FullName
}

func (s *draftService) SetIssueDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issueDate = date
}

func (s *draftService) SetDueDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dueDate = date
}

func (s *draftService) SetNotes(notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
}

func (s *draftService) AddItem() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.AddItem()
}

func (s *draftService) RemoveItem(id int64) []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.RemoveItem(id)
}

func (s *draftService) UpdateItem(id int64, field draft.Field, value string) []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.UpdateItem(id, field, value)
}

func (s *draftService) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Items()
}

func (s *draftService) Subtotal() float64 {
	return domain.Subtotal(s.Items())
}

func (s *draftService) Tax() float64 {
	return domain.Tax(s.Items(), s.taxRate)
}

func (s *draftService) Total() float64 {
	return domain.Total(s.Items(), s.taxRate)
}

func (s *draftService) Submit(ctx context.Context) (*api.Receipt, error) {
	d := s.Draft()

	if err := d.Validate(); err != nil {
		s.log.Warnw("draft rejected locally", "error", err)
		return nil, api.NewValidation(err.Error(), err)
	}

	items := make([]api.SubmitItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = api.SubmitItem{
			Description: item.Description,
			Qty:         item.Quantity,
			Rate:        item.Rate,
			Amount:      item.Amount,
		}
	}

	req := api.SubmitRequest{
		IssueDate: d.IssueDate,
		DueDate:   d.DueDate,
		Notes:     d.Notes,
		Items:     items,
		Subtotal:  domain.Subtotal(d.Items),
		Tax:       domain.Tax(d.Items, s.taxRate),
		Total:     domain.Total(d.Items, s.taxRate),
	}

	return s.submitter.Submit(ctx, d.StudentID, req)
}
