package application

import (
	"context"
	"strings"
	"time"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/fault"
)

type rightsService struct {
	repo RightsRepository
}

func NewRightsService(repo RightsRepository) RightsService {
	return &rightsService{repo: repo}
}

// Grant creates a record for the full key. Flags left nil start as false.
func (s *rightsService) Grant(ctx context.Context, cmd GrantRightsCommand) (*admindomain.RightsRecord, error) {
	key, err := admindomain.NewRightsKey(cmd.FormID, cmd.CampaignID, cmd.ClientID, cmd.EmployeeID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	record := &admindomain.RightsRecord{
		Key:       key,
		Flags:     cmd.Flags.Apply(admindomain.RightsFlags{}),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Update merges the supplied flags into the record matching the full key.
// There is no upsert: a missing record is NotFound.
func (s *rightsService) Update(ctx context.Context, cmd UpdateRightsCommand) (*admindomain.RightsRecord, error) {
	key, err := admindomain.NewRightsKey(cmd.FormID, cmd.CampaignID, cmd.ClientID, cmd.EmployeeID)
	if err != nil {
		return nil, err
	}
	if err := cmd.Patch.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, key, cmd.Patch)
}

// List uses the narrower (form, employee) key, so several records may match.
func (s *rightsService) List(ctx context.Context, formID, employeeID string) ([]admindomain.RightsRecord, error) {
	formID = strings.TrimSpace(formID)
	employeeID = strings.TrimSpace(employeeID)
	if formID == "" || employeeID == "" {
		return nil, fault.Validation("formId and employeeId are required")
	}
	return s.repo.FindByFormAndEmployee(ctx, formID, employeeID)
}

// CanView reports whether any record for (form, employee) grants viewData.
func (s *rightsService) CanView(ctx context.Context, formID, employeeID string) (bool, error) {
	records, err := s.List(ctx, formID, employeeID)
	if err != nil {
		return false, err
	}
	for _, record := range records {
		if record.Flags.ViewData {
			return true, nil
		}
	}
	return false, nil
}
