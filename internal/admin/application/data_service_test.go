package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sand-hq/campaign-api/internal/fault"
)

func newDataFixture(t *testing.T) (*formFixture, *memRecords, DataService) {
	t.Helper()
	f := newFormFixture(t)
	records := newMemRecords()
	return f, records, NewDataService(f.forms, records)
}

func TestDataServiceSubmitAndList(t *testing.T) {
	f, _, svc := newDataFixture(t)
	ctx := context.Background()
	form, err := f.svc.Create(ctx, CreateFormCommand{CampaignID: f.campaignID, Fields: nameField()})
	require.NoError(t, err)

	record, err := svc.Submit(ctx, SubmitDataCommand{
		CollectionName: form.CollectionName,
		Payload:        map[string]any{"Name": "Ada", "extra": 3},
		SubmittedBy:    "user9",
	})
	require.NoError(t, err)
	assert.Equal(t, form.ID, record.FormID)
	assert.Nil(t, record.AcceptedData)

	records, err := svc.List(ctx, form.CollectionName)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ada", records[0].Fields["Name"])
}

func TestDataServiceSubmitUnknownCollection(t *testing.T) {
	_, records, svc := newDataFixture(t)

	_, err := svc.Submit(context.Background(), SubmitDataCommand{
		CollectionName: "form_doesnotexist",
		Payload:        map[string]any{"a": 1},
	})
	assert.True(t, fault.IsNotFound(err))
	assert.Empty(t, records.data)
}

func TestDataServiceSubmitMissingRequiredField(t *testing.T) {
	f, _, svc := newDataFixture(t)
	ctx := context.Background()
	form, err := f.svc.Create(ctx, CreateFormCommand{CampaignID: f.campaignID, Fields: nameField()})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, SubmitDataCommand{CollectionName: form.CollectionName, Payload: map[string]any{"Name": "  "}})
	assert.True(t, fault.IsValidation(err))

	_, err = svc.Submit(ctx, SubmitDataCommand{CollectionName: form.CollectionName})
	assert.True(t, fault.IsValidation(err))
}

func TestDataServiceSubmitStoresUncheckedFields(t *testing.T) {
	f, records, svc := newDataFixture(t)
	ctx := context.Background()
	form, err := f.svc.Create(ctx, CreateFormCommand{
		CampaignID: f.campaignID,
		Fields: []FieldCommand{
			{Title: "Region", Type: "dropdown", Options: []string{"North"}},
			{Title: "Mail", Type: "email"},
		},
	})
	require.NoError(t, err)

	payloads := map[string]map[string]any{
		"empty object":          {},
		"value outside options": {"Region": "South"},
		"unparsable email":      {"Mail": "not-an-address"},
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			record, err := svc.Submit(ctx, SubmitDataCommand{CollectionName: form.CollectionName, Payload: payload})
			require.NoError(t, err)
			assert.Equal(t, payload, record.Fields)
		})
	}
	assert.Len(t, records.data[form.CollectionName], len(payloads))

	_, err = svc.Submit(ctx, SubmitDataCommand{CollectionName: form.CollectionName})
	assert.True(t, fault.IsValidation(err))
}

func TestDataServiceListEmpty(t *testing.T) {
	f, _, svc := newDataFixture(t)
	ctx := context.Background()
	form, err := f.svc.Create(ctx, CreateFormCommand{CampaignID: f.campaignID, Fields: nameField()})
	require.NoError(t, err)

	records, err := svc.ListForForm(ctx, form.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDataServiceReview(t *testing.T) {
	f, _, svc := newDataFixture(t)
	ctx := context.Background()
	form, err := f.svc.Create(ctx, CreateFormCommand{CampaignID: f.campaignID, Fields: nameField()})
	require.NoError(t, err)
	record, err := svc.SubmitToForm(ctx, form.ID, SubmitDataCommand{Payload: map[string]any{"Name": "Ada"}})
	require.NoError(t, err)

	reviewed, err := svc.Review(ctx, ReviewDataCommand{FormID: form.ID, ItemID: record.ID, Accepted: boolPtr(false)})
	require.NoError(t, err)
	require.NotNil(t, reviewed.AcceptedData)
	assert.False(t, *reviewed.AcceptedData)

	_, err = svc.Review(ctx, ReviewDataCommand{FormID: form.ID, ItemID: "missing", Accepted: boolPtr(true)})
	assert.True(t, fault.IsNotFound(err))
}

func TestDataServiceReviewUnknownForm(t *testing.T) {
	_, _, svc := newDataFixture(t)

	_, err := svc.Review(context.Background(), ReviewDataCommand{FormID: "f1", ItemID: "i1", Accepted: boolPtr(true)})
	assert.True(t, fault.IsNotFound(err))
}

func TestDataServiceReviewRequiresDecision(t *testing.T) {
	_, _, svc := newDataFixture(t)

	_, err := svc.Review(context.Background(), ReviewDataCommand{FormID: "f1", ItemID: "i1"})
	assert.True(t, fault.IsValidation(err))
}
