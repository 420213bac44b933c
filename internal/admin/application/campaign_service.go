package application

import (
	"context"
	"strings"
	"time"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/fault"
)

// DefaultRecentCampaigns is how many campaigns Recent returns without a limit.
const DefaultRecentCampaigns = 4

type campaignService struct {
	repo     CampaignRepository
	uploader PhotoUploader
}

func NewCampaignService(repo CampaignRepository, uploader PhotoUploader) CampaignService {
	return &campaignService{repo: repo, uploader: uploader}
}

func (s *campaignService) Create(ctx context.Context, cmd CreateCampaignCommand) (*admindomain.Campaign, error) {
	if _, err := admindomain.RequiredText("campaign title", cmd.Title); err != nil {
		return nil, err
	}
	if _, err := admindomain.RequiredText("clientId", cmd.ClientID); err != nil {
		return nil, err
	}
	logoURL, err := resolvePhoto(ctx, s.uploader, "campaigns", "campaign logo", cmd.LogoURL, cmd.Logo)
	if err != nil {
		return nil, err
	}
	campaign, err := admindomain.NewCampaign(cmd.Title, cmd.ClientID, logoURL)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *campaignService) Detail(ctx context.Context, id string) (*admindomain.Campaign, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fault.Validation("campaignId is required")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *campaignService) Recent(ctx context.Context, limit int) ([]admindomain.Campaign, error) {
	if limit <= 0 {
		limit = DefaultRecentCampaigns
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.FindRecent(ctx, limit)
}

func (s *campaignService) ListForClient(ctx context.Context, clientID string) ([]admindomain.Campaign, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, fault.Validation("clientId is required")
	}
	return s.repo.FindByClient(ctx, clientID)
}

func (s *campaignService) ListByIDs(ctx context.Context, ids []string) ([]admindomain.Campaign, error) {
	if len(ids) == 0 {
		return []admindomain.Campaign{}, nil
	}
	return s.repo.FindByIDs(ctx, ids)
}

func (s *campaignService) Delete(ctx context.Context, id string) (*admindomain.Campaign, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fault.Validation("campaignId is required")
	}
	return s.repo.Delete(ctx, id)
}
