package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tradecheck/tradecheck/internal/domain"
)

const (
	historyFile = "history/assessments.json"
	reportsDir  = "reports"
)

// FileStore implements domain.ReportStore and domain.ReportHistory using JSON
// files under a store directory: one file per report plus a shared history
// list.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) reportPath(id string) string {
	return filepath.Join(s.dir, reportsDir, filepath.Base(id)+".json")
}

func (s *FileStore) Save(_ context.Context, submissionID string, report *domain.AssessmentReport) error {
	if submissionID == "" {
		return fmt.Errorf("saving report: empty submission id")
	}
	fp := s.reportPath(submissionID)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

func (s *FileStore) Load(_ context.Context, submissionID string) (*domain.AssessmentReport, error) {
	data, err := os.ReadFile(s.reportPath(submissionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, submissionID)
		}
		return nil, err
	}

	var report domain.AssessmentReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *FileStore) Record(entry domain.ReportEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.entries()
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	fp := filepath.Join(s.dir, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

func (s *FileStore) Entries() ([]domain.ReportEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries()
}

func (s *FileStore) entries() ([]domain.ReportEntry, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, historyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.ReportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
