// Package mysql persists assessments with gorm: vehicle_details 1-1
// assessments 1-N condition_issues, keyed by submission id.
package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/tradecheck/tradecheck/internal/domain"
)

// Store implements domain.ReportStore.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Open connects to dsn and returns a Store.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to mysql: %w", err)
	}
	return NewWithDB(db), nil
}

func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Migrate creates or updates the three tables.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&VehicleDetailsRow{}, &AssessmentRow{}, &ConditionIssueRow{})
}

// Save replaces any earlier assessment for the submission.
func (s *Store) Save(ctx context.Context, submissionID string, report *domain.AssessmentReport) error {
	row := toRow(submissionID, report, s.now().UTC())

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev AssessmentRow
		err := tx.Where("submission_id = ?", submissionID).First(&prev).Error
		switch {
		case err == nil:
			if err := tx.Where("assessment_id = ?", prev.ID).Delete(&ConditionIssueRow{}).Error; err != nil {
				return fmt.Errorf("deleting previous issues: %w", err)
			}
			if err := tx.Delete(&prev).Error; err != nil {
				return fmt.Errorf("deleting previous assessment: %w", err)
			}
			if err := tx.Delete(&VehicleDetailsRow{}, prev.VehicleDetailsID).Error; err != nil {
				return fmt.Errorf("deleting previous vehicle details: %w", err)
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("finding previous assessment: %w", err)
		}

		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("creating assessment: %w", err)
		}
		return nil
	})
}

func (s *Store) Load(ctx context.Context, submissionID string) (*domain.AssessmentReport, error) {
	var row AssessmentRow
	err := s.db.WithContext(ctx).
		Preload("VehicleDetails").
		Preload("ConditionIssues", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("submission_id = ?", submissionID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, submissionID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading assessment %s: %w", submissionID, err)
	}
	return fromRow(row), nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
