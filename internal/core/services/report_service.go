package services

import (
	"context"
	"errors"
	"time"

	"roomfinder/internal/adapters/persistence/repositories"
	"roomfinder/internal/core/domain"
	"roomfinder/internal/pkg/sanitize"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrReportNotFound is returned when deleting an unknown report
var ErrReportNotFound = errors.New("report not found")

// CreateReportInput represents a moderation complaint
type CreateReportInput struct {
	UserID   string              `json:"userId" validate:"required,max=64"`
	Name     string              `json:"name" validate:"max=100"`
	Username string              `json:"username" validate:"required,max=50"`
	Reason   domain.ReportReason `json:"reason" validate:"required,oneof='Spam' 'Fake Profile' 'Inappropriate Content' 'Other'"`
	Comments string              `json:"comments" validate:"max=2000"`
}

// ReportService handles moderation reports
type ReportService struct {
	store repositories.Store
	log   *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(store repositories.Store, log *zap.Logger) *ReportService {
	return &ReportService{store: store, log: log}
}

// Create records a report filed by the caller. The target is not checked for existence.
func (s *ReportService) Create(ctx context.Context, reporter Identity, input *CreateReportInput) (*domain.Report, error) {
	report := &domain.Report{
		ID:           uuid.NewString(),
		TargetUserID: input.UserID,
		Name:         sanitize.Text(input.Name),
		Username:     input.Username,
		Reason:       input.Reason,
		Comments:     sanitize.Text(input.Comments),
		ReportedBy:   reporter.Username,
		ReportedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}

	if err := s.store.Reports().Create(ctx, report); err != nil {
		return nil, err
	}

	s.log.Info("report filed",
		zap.String("report_id", report.ID),
		zap.String("target", report.Username),
		zap.String("reason", string(report.Reason)),
	)
	return report, nil
}

// List returns every report, newest first
func (s *ReportService) List(ctx context.Context) ([]*domain.Report, error) {
	return s.store.Reports().List(ctx)
}

// Delete removes a report
func (s *ReportService) Delete(ctx context.Context, id string) error {
	err := s.store.Reports().Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return ErrReportNotFound
	}
	return err
}
