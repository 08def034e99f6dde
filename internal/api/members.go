package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/andy/tuitiondesk/internal/domain"
	"github.com/andy/tuitiondesk/internal/logger"
)

// memberRecord mirrors the backend Member entity. The backend may encode
// ids as numbers or strings; flexID accepts both.
type memberRecord struct {
	ID       flexID `json:"id"`
	FullName string `json:"fullName"`
}

// flexID canonicalizes an id to its string form.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// unwrapCollection returns the raw JSON array from either a bare array
// response or a paginated envelope exposing it under "content". This is
// the single place that absorbs the backend's two response shapes.
func unwrapCollection(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.RawMessage(trimmed), nil
	}

	var envelope struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	if envelope.Content == nil {
		return json.RawMessage("[]"), nil
	}
	return envelope.Content, nil
}

// MembersClient fetches the billable member directory.
type MembersClient struct {
	http    Doer
	baseURL string
	log     *logger.Logger
}

func NewMembersClient(http Doer, baseURL string, log *logger.Logger) *MembersClient {
	return &MembersClient{http: http, baseURL: baseURL, log: log}
}

// FetchStudents returns the member directory in backend order. All
// failures, transport or otherwise, surface as KindFetchFailed and no
// partial entries are returned.
func (c *MembersClient) FetchStudents(ctx context.Context) ([]domain.Student, error) {
	resp, err := c.http.Send(ctx, &Request{
		Method: http.MethodGet,
		URL:    c.baseURL + "/api/members",
	})
	if err != nil {
		c.log.Errorw("fetch students failed", "error", err)
		return nil, asFetchFailed("failed to fetch students", err)
	}

	raw, err := unwrapCollection(resp.Body)
	if err != nil {
		return nil, NewFetchFailed("malformed members response", err)
	}

	var records []memberRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, NewFetchFailed("malformed members response", err)
	}

	students := make([]domain.Student, len(records))
	for i, rec := range records {
		students[i] = domain.Student{
			ID:       string(rec.ID),
			FullName: rec.FullName,
		}
	}

	c.log.Infow("fetched students", "count", len(students))
	return students, nil
}
