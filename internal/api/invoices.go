package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/andy/tuitiondesk/internal/domain"
	"github.com/andy/tuitiondesk/internal/logger"
)

// SubmitItem is a line item at the wire boundary. The backend calls the
// quantity field "qty".
type SubmitItem struct {
	Description string  `json:"description"`
	Qty         int     `json:"qty"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// SubmitRequest is the draft payload for POST /api/invoices/{studentId}.
type SubmitRequest struct {
	IssueDate string       `json:"issueDate"`
	DueDate   string       `json:"dueDate"`
	Notes     string       `json:"notes"`
	Items     []SubmitItem `json:"items"`
	Subtotal  float64      `json:"subtotal"`
	Tax       float64      `json:"tax"`
	Total     float64      `json:"total"`
}

// Receipt is the backend's success body, kept opaque.
type Receipt struct {
	Raw json.RawMessage
}

// InvoicesClient submits invoice drafts and lists persisted invoices.
type InvoicesClient struct {
	http    Doer
	baseURL string
	log     *logger.Logger
}

func NewInvoicesClient(http Doer, baseURL string, log *logger.Logger) *InvoicesClient {
	return &InvoicesClient{http: http, baseURL: baseURL, log: log}
}

// Submit performs the single network write for a draft. A success status
// with an unparseable body counts as a backend rejection; nothing is
// retried here.
func (c *InvoicesClient) Submit(ctx context.Context, studentID string, req SubmitRequest) (*Receipt, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, NewValidation("could not encode draft", err)
	}

	resp, err := c.http.Send(ctx, &Request{
		Method: http.MethodPost,
		URL:    c.baseURL + "/api/invoices/" + url.PathEscape(studentID),
		Body:   body,
	})
	if err != nil {
		c.log.Errorw("submit draft failed", "student_id", studentID, "error", err)
		return nil, err
	}

	var raw json.RawMessage
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return nil, NewBackendRejected(resp.StatusCode, resp.Body, "unparseable success body")
	}

	c.log.Infow("draft submitted", "student_id", studentID, "total", req.Total)
	return &Receipt{Raw: raw}, nil
}

// List fetches the persisted invoices scoped to a member, normalizing the
// bare-array and paginated envelope response shapes.
func (c *InvoicesClient) List(ctx context.Context, memberID string) ([]domain.Invoice, error) {
	resp, err := c.http.Send(ctx, &Request{
		Method: http.MethodGet,
		URL:    c.baseURL + "/api/invoices?memberId=" + url.QueryEscape(memberID),
	})
	if err != nil {
		c.log.Errorw("fetch invoices failed", "member_id", memberID, "error", err)
		return nil, asFetchFailed("failed to fetch invoices", err)
	}

	raw, err := unwrapCollection(resp.Body)
	if err != nil {
		return nil, NewFetchFailed("malformed invoices response", err)
	}

	var invoices []domain.Invoice
	if err := json.Unmarshal(raw, &invoices); err != nil {
		return nil, NewFetchFailed("malformed invoices response", err)
	}

	c.log.Infow("fetched invoices", "member_id", memberID, "count", len(invoices))
	return invoices, nil
}
