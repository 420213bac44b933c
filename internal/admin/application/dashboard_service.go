package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
)

type dashboardService struct {
	clients   ClientRepository
	campaigns CampaignRepository
	forms     FormRepository
	users     UserRepository
}

func NewDashboardService(clients ClientRepository, campaigns CampaignRepository, forms FormRepository, users UserRepository) DashboardService {
	return &dashboardService{clients: clients, campaigns: campaigns, forms: forms, users: users}
}

// Counts runs the four count queries in parallel; the first error cancels the rest.
func (s *dashboardService) Counts(ctx context.Context) (DashboardCounts, error) {
	var counts DashboardCounts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts.Clients, err = s.clients.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Campaigns, err = s.campaigns.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Forms, err = s.forms.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Promoters, err = s.users.CountByRole(gctx, admindomain.RolePromoter)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardCounts{}, err
	}
	return counts, nil
}
