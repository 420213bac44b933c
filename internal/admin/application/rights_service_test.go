package application

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sand-hq/campaign-api/internal/fault"
)

func boolPtr(v bool) *bool { return &v }

func TestRightsServiceUpdateIsIdempotent(t *testing.T) {
	repo := &memRights{}
	svc := NewRightsService(repo)
	ctx := context.Background()

	_, err := svc.Grant(ctx, GrantRightsCommand{FormID: "f1", CampaignID: "c1", ClientID: "k1", EmployeeID: "e1"})
	require.NoError(t, err)

	cmd := UpdateRightsCommand{FormID: "f1", CampaignID: "c1", ClientID: "k1", EmployeeID: "e1"}
	cmd.Patch.ViewData = boolPtr(true)

	first, err := svc.Update(ctx, cmd)
	require.NoError(t, err)
	second, err := svc.Update(ctx, cmd)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("record changed on re-apply (-first +second):\n%s", diff)
	}
	assert.True(t, second.Flags.ViewData)
	assert.False(t, second.Flags.DownloadData)
}

func TestRightsServiceUpdateLeavesOtherFlags(t *testing.T) {
	repo := &memRights{}
	svc := NewRightsService(repo)
	ctx := context.Background()

	grant := GrantRightsCommand{FormID: "f1", CampaignID: "c1", ClientID: "k1", EmployeeID: "e1"}
	grant.Flags.DownloadReport = boolPtr(true)
	_, err := svc.Grant(ctx, grant)
	require.NoError(t, err)

	cmd := UpdateRightsCommand{FormID: "f1", CampaignID: "c1", ClientID: "k1", EmployeeID: "e1"}
	cmd.Patch.ManipulateData = boolPtr(true)
	record, err := svc.Update(ctx, cmd)
	require.NoError(t, err)

	assert.True(t, record.Flags.DownloadReport)
	assert.True(t, record.Flags.ManipulateData)
}

func TestRightsServiceUpdateMissingRecord(t *testing.T) {
	svc := NewRightsService(&memRights{})

	cmd := UpdateRightsCommand{FormID: "f1", CampaignID: "c1", ClientID: "k1", EmployeeID: "e1"}
	cmd.Patch.ViewData = boolPtr(true)
	_, err := svc.Update(context.Background(), cmd)
	assert.True(t, fault.IsNotFound(err))
}

func TestRightsServiceUpdateEmptyPatch(t *testing.T) {
	svc := NewRightsService(&memRights{})

	_, err := svc.Update(context.Background(), UpdateRightsCommand{FormID: "f1", CampaignID: "c1", ClientID: "k1", EmployeeID: "e1"})
	assert.True(t, fault.IsValidation(err))
}

func TestRightsServiceListEmpty(t *testing.T) {
	svc := NewRightsService(&memRights{})

	records, err := svc.List(context.Background(), "f1", "e1")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestRightsServiceGrantDuplicate(t *testing.T) {
	svc := NewRightsService(&memRights{})
	ctx := context.Background()
	cmd := GrantRightsCommand{FormID: "f1", CampaignID: "c1", ClientID: "k1", EmployeeID: "e1"}

	_, err := svc.Grant(ctx, cmd)
	require.NoError(t, err)
	_, err = svc.Grant(ctx, cmd)
	assert.True(t, fault.IsValidation(err))
}

func TestRightsServiceCanView(t *testing.T) {
	svc := NewRightsService(&memRights{})
	ctx := context.Background()

	ok, err := svc.CanView(ctx, "f1", "e1")
	require.NoError(t, err)
	assert.False(t, ok)

	grant := GrantRightsCommand{FormID: "f1", CampaignID: "c1", ClientID: "k1", EmployeeID: "e1"}
	grant.Flags.ViewData = boolPtr(true)
	_, err = svc.Grant(ctx, grant)
	require.NoError(t, err)

	ok, err = svc.CanView(ctx, "f1", "e1")
	require.NoError(t, err)
	assert.True(t, ok)
}
