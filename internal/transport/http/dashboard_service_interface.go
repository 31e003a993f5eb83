package http

import (
	"context"
	"io"

	"campaignlens/internal/dataprocessing"
	"campaignlens/pkg/contracts/domain"
)

// DashboardServiceInterface defines what the dashboard handler needs from the
// service layer. Kept narrow so handler tests can stub it.
type DashboardServiceInterface interface {
	Analyze(ctx context.Context, r io.Reader, format dataprocessing.Format) (*domain.Dataset, error)
	Charts(dataset *domain.Dataset) domain.Charts
	FilterRows(dataset *domain.Dataset, group domain.GroupLabel) ([]domain.CampaignRecord, dataprocessing.DescriptiveStats, error)
	Groups() []domain.GroupLabel
}
