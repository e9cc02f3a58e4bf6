package service

import (
	"context"

	"seocontrol/internal/model"
	"seocontrol/internal/pubsub"
	"seocontrol/internal/repository"

	"github.com/rs/zerolog"
)

type ReportService interface {
	List(ctx context.Context, userID string) ([]model.Report, error)
	Create(ctx context.Context, r *model.Report) (*model.Report, error)
}

// ReportRequestedEvent is published after a report row is created.
type ReportRequestedEvent struct {
	ReportID string           `json:"report_id"`
	SiteID   string           `json:"site_id"`
	UserID   string           `json:"user_id"`
	Type     model.ReportType `json:"type"`
}

type reportService struct {
	reportRepo repository.ReportRepository
	siteRepo   repository.SiteRepository
	publisher  pubsub.Publisher
	topic      string
	logger     zerolog.Logger
}

// NewReportService creates a ReportService. publisher may be nil, in which case
// no events are emitted.
func NewReportService(
	reportRepo repository.ReportRepository,
	siteRepo repository.SiteRepository,
	publisher pubsub.Publisher,
	topic string,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		siteRepo:   siteRepo,
		publisher:  publisher,
		topic:      topic,
		logger:     logger.With().Str("service", "ReportService").Logger(),
	}
}

func (s *reportService) List(ctx context.Context, userID string) ([]model.Report, error) {
	return s.reportRepo.ListByUser(ctx, userID)
}

// Create queues a report for one of the user's sites. Reports start PENDING;
// content is filled in later by whatever consumes the report-requested topic.
func (s *reportService) Create(ctx context.Context, r *model.Report) (*model.Report, error) {
	if err := requireOwnedSite(ctx, s.siteRepo, r.SiteID, r.UserID); err != nil {
		return nil, err
	}
	if err := s.reportRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.announce(ctx, r)
	return r, nil
}

// announce publishes the report-requested event. The report stays PENDING when
// publishing fails, so the failure is only logged.
func (s *reportService) announce(ctx context.Context, r *model.Report) {
	if s.publisher == nil || s.topic == "" {
		return
	}
	msgID, err := pubsub.PublishJSON(ctx, s.publisher, s.topic, ReportRequestedEvent{
		ReportID: r.ID,
		SiteID:   r.SiteID,
		UserID:   r.UserID,
		Type:     r.Type,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("report_id", r.ID).Msg("Failed to publish report request")
		return
	}
	s.logger.Info().Str("report_id", r.ID).Str("message_id", msgID).Msg("Report request published")
}
