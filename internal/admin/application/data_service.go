package application

import (
	"context"
	"strings"
	"time"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/fault"
)

type dataService struct {
	forms   FormRepository
	records RecordRepository
}

func NewDataService(forms FormRepository, records RecordRepository) DataService {
	return &dataService{forms: forms, records: records}
}

// Submit stores a payload in the collection owned by a registered form.
// Unknown collection names are NotFound rather than created on the fly.
func (s *dataService) Submit(ctx context.Context, cmd SubmitDataCommand) (*admindomain.DynamicRecord, error) {
	name := strings.TrimSpace(cmd.CollectionName)
	if name == "" {
		return nil, fault.Validation("collectionName is required")
	}
	form, err := s.forms.FindByCollectionName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, form, cmd)
}

// SubmitToForm is Submit addressed by form id.
func (s *dataService) SubmitToForm(ctx context.Context, formID string, cmd SubmitDataCommand) (*admindomain.DynamicRecord, error) {
	if strings.TrimSpace(formID) == "" {
		return nil, fault.Validation("formId is required")
	}
	form, err := s.forms.FindByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, form, cmd)
}

func (s *dataService) List(ctx context.Context, collectionName string) ([]admindomain.DynamicRecord, error) {
	name := strings.TrimSpace(collectionName)
	if name == "" {
		return nil, fault.Validation("collectionName is required")
	}
	form, err := s.forms.FindByCollectionName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.records.FindAll(ctx, form.CollectionName)
}

func (s *dataService) ListForForm(ctx context.Context, formID string) ([]admindomain.DynamicRecord, error) {
	if strings.TrimSpace(formID) == "" {
		return nil, fault.Validation("formId is required")
	}
	form, err := s.forms.FindByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	return s.records.FindAll(ctx, form.CollectionName)
}

// Review sets acceptedData on one record of the form's collection.
func (s *dataService) Review(ctx context.Context, cmd ReviewDataCommand) (*admindomain.DynamicRecord, error) {
	formID := strings.TrimSpace(cmd.FormID)
	itemID := strings.TrimSpace(cmd.ItemID)
	if formID == "" || itemID == "" || cmd.Accepted == nil {
		return nil, fault.Validation("itemId, formId and acceptData are required")
	}
	form, err := s.forms.FindByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	return s.records.SetAccepted(ctx, form.CollectionName, itemID, *cmd.Accepted)
}

func (s *dataService) insert(ctx context.Context, form *admindomain.FormDefinition, cmd SubmitDataCommand) (*admindomain.DynamicRecord, error) {
	if cmd.Payload == nil {
		return nil, fault.Validation("submission payload must be a JSON object")
	}
	if err := form.CheckSubmission(cmd.Payload); err != nil {
		return nil, err
	}
	record := &admindomain.DynamicRecord{
		FormID:      form.ID,
		Fields:      cmd.Payload,
		SubmittedBy: strings.TrimSpace(cmd.SubmittedBy),
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.records.Insert(ctx, form.CollectionName, record); err != nil {
		return nil, err
	}
	return record, nil
}
