package application

import (
	"context"
	"errors"
	"strings"
	"time"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/fault"
)

// rollbackTimeout bounds compensating writes, which run even if the request
// context is already cancelled.
const rollbackTimeout = 5 * time.Second

type formService struct {
	forms       FormRepository
	campaigns   CampaignRepository
	provisioner CollectionProvisioner
}

func NewFormService(forms FormRepository, campaigns CampaignRepository, provisioner CollectionProvisioner) FormService {
	return &formService{forms: forms, campaigns: campaigns, provisioner: provisioner}
}

// Create validates the fields, checks the campaign and then provisions the
// definition and its collection. A failed provisioning step deletes the
// definition again.
func (s *formService) Create(ctx context.Context, cmd CreateFormCommand) (*admindomain.FormDefinition, error) {
	campaignID := strings.TrimSpace(cmd.CampaignID)
	if campaignID == "" {
		return nil, fault.Validation("campaignId is required")
	}
	fields, err := buildFields(cmd.Fields)
	if err != nil {
		return nil, err
	}
	if _, err := s.campaigns.FindByID(ctx, campaignID); err != nil {
		if fault.IsNotFound(err) {
			return nil, fault.Validationf("campaign %s does not exist", campaignID)
		}
		return nil, err
	}

	now := time.Now().UTC()
	form := &admindomain.FormDefinition{
		CampaignID: campaignID,
		Title:      fields[0].Title,
		Fields:     fields,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.provision(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// CreateNested provisions a child form under mainFormID and links it from
// the parent. Any failure after the child exists is compensated.
func (s *formService) CreateNested(ctx context.Context, cmd CreateNestedFormCommand) (*NestedFormResult, error) {
	mainFormID := strings.TrimSpace(cmd.MainFormID)
	if mainFormID == "" {
		return nil, fault.Validation("mainFormId is required")
	}
	fields, err := buildFields(cmd.Fields)
	if err != nil {
		return nil, err
	}
	parent, err := s.forms.FindByID(ctx, mainFormID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	child := &admindomain.FormDefinition{
		CampaignID: parent.CampaignID,
		Title:      fields[0].Title,
		Fields:     fields,
		IsNested:   true,
		MainFormID: parent.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.provision(ctx, child); err != nil {
		return nil, err
	}

	if err := s.forms.AddNested(ctx, parent.ID, child.ID); err != nil {
		rollbackErr := s.rollback(ctx, child, true)
		if fault.IsNotFound(err) && rollbackErr == nil {
			return nil, err
		}
		return nil, fault.Internal("failed to link nested form", errors.Join(err, rollbackErr))
	}
	parent.LinkNestedForm(child.ID)
	parent.UpdatedAt = now

	return &NestedFormResult{MainForm: parent, Form: child}, nil
}

func (s *formService) Nested(ctx context.Context, mainFormID string) ([]admindomain.FormDefinition, error) {
	if strings.TrimSpace(mainFormID) == "" {
		return nil, fault.Validation("mainFormId is required")
	}
	parent, err := s.forms.FindByID(ctx, mainFormID)
	if err != nil {
		return nil, err
	}
	if len(parent.NestedForms) == 0 {
		return nil, fault.NotFoundf("form %s has no nested forms", parent.ID)
	}
	return s.forms.FindByIDs(ctx, parent.NestedForms)
}

func (s *formService) ListForCampaign(ctx context.Context, campaignID string, topLevelOnly bool) ([]admindomain.FormDefinition, error) {
	if strings.TrimSpace(campaignID) == "" {
		return nil, fault.Validation("campaignId is required")
	}
	return s.forms.FindByCampaign(ctx, campaignID, topLevelOnly)
}

func (s *formService) ListByIDs(ctx context.Context, ids []string) ([]admindomain.FormDefinition, error) {
	if len(ids) == 0 {
		return []admindomain.FormDefinition{}, nil
	}
	return s.forms.FindByIDs(ctx, ids)
}

func (s *formService) Detail(ctx context.Context, id string) (*admindomain.FormDefinition, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fault.Validation("formId is required")
	}
	return s.forms.FindByID(ctx, id)
}

// provision is the two-phase create: definition first, then its collection.
func (s *formService) provision(ctx context.Context, form *admindomain.FormDefinition) error {
	if err := s.forms.Create(ctx, form); err != nil {
		return err
	}
	if err := s.provisioner.CreateCollection(ctx, form.CollectionName); err != nil {
		rollbackErr := s.rollback(ctx, form, false)
		return fault.Internal("failed to provision form storage", errors.Join(err, rollbackErr))
	}
	return nil
}

func (s *formService) rollback(ctx context.Context, form *admindomain.FormDefinition, dropCollection bool) error {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	var errs []error
	if dropCollection {
		if err := s.provisioner.DropCollection(rctx, form.CollectionName); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.forms.Delete(rctx, form.ID); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func buildFields(inputs []FieldCommand) ([]admindomain.FieldSpec, error) {
	if len(inputs) == 0 {
		return nil, fault.Validation("formFields must contain at least one field")
	}
	fields := make([]admindomain.FieldSpec, 0, len(inputs))
	for i, input := range inputs {
		field, err := admindomain.NewFieldSpec(i, input.Title, input.Type, input.Options, input.Required, input.Rule)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}
