package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/fault"
)

func TestAccountServiceCreateAndLogin(t *testing.T) {
	users := newMemUsers()
	svc := NewAccountService(users, &memAssignments{}, stubIssuer{})
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, CreateUserCommand{
		Name:     "Pat",
		Email:    "Pat@Example.com",
		Password: "correct horse",
		Role:     "promoter",
	})
	require.NoError(t, err)
	assert.Equal(t, admindomain.Email("pat@example.com"), user.Email)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	result, err := svc.Login(ctx, "pat@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "token-"+user.ID, result.Token)
	assert.NotNil(t, result.User.Forms)

	_, err = svc.Login(ctx, "pat@example.com", "wrong password")
	assert.True(t, fault.IsValidation(err))
	assert.Equal(t, "invalid credentials", fault.MessageOf(err, ""))

	_, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	assert.Equal(t, "invalid credentials", fault.MessageOf(err, ""))
}

func TestAccountServiceRejectsDuplicateEmail(t *testing.T) {
	svc := NewAccountService(newMemUsers(), nil, stubIssuer{})
	ctx := context.Background()
	cmd := CreateUserCommand{Name: "Pat", Email: "pat@example.com", Password: "12345678", Role: "mis"}

	_, err := svc.CreateUser(ctx, cmd)
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, cmd)
	assert.True(t, fault.IsValidation(err))
}

func TestAccountServiceCreateUserValidation(t *testing.T) {
	svc := NewAccountService(newMemUsers(), nil, stubIssuer{})

	tests := []struct {
		name string
		cmd  CreateUserCommand
	}{
		{"missing name", CreateUserCommand{Email: "a@b.co", Password: "12345678", Role: "admin"}},
		{"bad email", CreateUserCommand{Name: "a", Email: "nope", Password: "12345678", Role: "admin"}},
		{"unknown role", CreateUserCommand{Name: "a", Email: "a@b.co", Password: "12345678", Role: "root"}},
		{"short password", CreateUserCommand{Name: "a", Email: "a@b.co", Password: "123", Role: "admin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(context.Background(), tt.cmd)
			assert.True(t, fault.IsValidation(err))
		})
	}
}

func TestAccountServiceMe(t *testing.T) {
	users := newMemUsers()
	assignments := &memAssignments{}
	svc := NewAccountService(users, assignments, stubIssuer{})
	ctx := context.Background()
	manager := users.add("max", admindomain.RoleManager)
	_, err := assignments.Add(ctx, admindomain.AssignManagerClient, manager.ID, "client7")
	require.NoError(t, err)

	me, err := svc.Me(ctx, manager.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"client7"}, me.ListOfClients)

	_, err = svc.Me(ctx, "ghost")
	assert.True(t, fault.IsNotFound(err))
}
