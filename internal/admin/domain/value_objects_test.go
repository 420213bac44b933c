package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient("Acme", "NY", "acme.com", "https://cdn.example.com/acme.png")
	require.NoError(t, err)
	assert.Equal(t, "Acme", client.Name)
	assert.Equal(t, URL("acme.com"), client.Website)

	_, err = NewClient("Acme", "", "acme.com", "https://cdn.example.com/acme.png")
	assert.ErrorContains(t, err, "client location is required")

	_, err = NewClient("Acme", "NY", "acme.com", "not a url")
	assert.ErrorContains(t, err, "invalid client photo")
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("MIS")
	require.NoError(t, err)
	assert.Equal(t, RoleMIS, role)

	_, err = ParseRole("owner")
	assert.ErrorContains(t, err, "unknown role")

	kind, ok := AssignmentKindForRole(RoleManager)
	assert.True(t, ok)
	assert.Equal(t, RoleManager, kind.OwnerRole())

	_, ok = AssignmentKindForRole(RoleAdmin)
	assert.False(t, ok)
}

func TestNewEmailNormalises(t *testing.T) {
	email, err := NewEmail(" Ann@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, Email("ann@example.com"), email)

	_, err = NewEmail("ann")
	assert.Error(t, err)
}
