package service

import (
	"context"
	"sync"

	"github.com/andy/tuitiondesk/internal/domain"
	"github.com/andy/tuitiondesk/internal/logger"
)

// StudentFetcher is the read side of the member directory.
type StudentFetcher interface {
	FetchStudents(ctx context.Context) ([]domain.Student, error)
}

// DirectoryService caches the billable student directory for the form.
// The directory is fetched once per screen activation and never
// auto-refreshes.
type DirectoryService interface {
	// Refresh fetches the directory. On failure the cache is emptied and
	// the error message is retained for display.
	Refresh(ctx context.Context) ([]domain.Student, error)

	// Students returns the cached directory in backend order.
	Students() []domain.Student

	// Resolve looks up a cached student by canonical string id.
	Resolve(id string) (domain.Student, bool)

	// LastError returns the message from the most recent failed refresh,
	// or "" after a success.
	LastError() string
}

type directoryService struct {
	fetcher StudentFetcher
	log     *logger.Logger

	mu       sync.Mutex
	students []domain.Student
	lastErr  string
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(fetcher StudentFetcher, log *logger.Logger) DirectoryService {
	return &directoryService{fetcher: fetcher, log: log}
}

func (s *directoryService) Refresh(ctx context.Context) ([]domain.Student, error) {
	students, err := s.fetcher.FetchStudents(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		// No partial entries survive a failed fetch
		s.students = nil
		s.lastErr = err.Error()
		return nil, err
	}

	s.students = students
	s.lastErr = ""
	return s.snapshot(), nil
}

func (s *directoryService) Students() []domain.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// snapshot copies the cache; callers must hold mu.
func (s *directoryService) snapshot() []domain.Student {
	out := make([]domain.Student, len(s.students))
	copy(out, s.students)
	return out
}

func (s *directoryService) Resolve(id string) (domain.Student, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.students {
		if st.ID == id {
			return st, true
		}
	}
	return domain.Student{}, false
}

func (s *directoryService) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
