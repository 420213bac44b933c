package presenter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
)

func TestUserOnlyShowsOwnMembershipList(t *testing.T) {
	raw, err := json.Marshal(User(admindomain.User{ID: "u1", Role: admindomain.RoleMIS, PasswordHash: "hash"}))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, []any{}, body["listOfCampaigns"])
	assert.NotContains(t, body, "forms")
	assert.NotContains(t, body, "listOfClients")
	assert.NotContains(t, string(raw), "hash")
}

func TestFormAlwaysHasNestedList(t *testing.T) {
	resp := Form(admindomain.FormDefinition{ID: "f1"})
	assert.NotNil(t, resp.NestedForms)
	assert.NotNil(t, resp.FormFields)
}
