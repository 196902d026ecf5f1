package http

import (
	"context"

	"pmfkit/internal/pmf"
	"pmfkit/internal/services"
	"pmfkit/pkg/contracts/domain"
)

// RunReader is the service surface the handlers depend on.
type RunReader interface {
	Sites(ctx context.Context) ([]pmf.SiteInfo, error)
	Metadata(ctx context.Context, site string) (*domain.Metadata, error)
	Profiles(ctx context.Context, site string, solution domain.Solution) (*domain.ProfileTable, error)
	Contributions(ctx context.Context, site string, solution domain.Solution) (*domain.ContributionTable, error)
	Bootstrap(ctx context.Context, site string, solution domain.Solution) (*services.BootstrapResult, error)
	Uncertainty(ctx context.Context, site string, solution domain.Solution) (*services.UncertaintyResult, error)
	Seasonal(ctx context.Context, site string, solution domain.Solution, specie string, normalize bool) (*domain.SeasonalTable, error)
}
