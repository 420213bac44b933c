package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/fault"
)

const minPasswordLength = 8

var errInvalidCredentials = fault.Validation("invalid credentials")

type accountService struct {
	users       UserRepository
	assignments AssignmentRepository
	tokens      TokenIssuer
}

func NewAccountService(users UserRepository, assignments AssignmentRepository, tokens TokenIssuer) AccountService {
	return &accountService{users: users, assignments: assignments, tokens: tokens}
}

func (s *accountService) CreateUser(ctx context.Context, cmd CreateUserCommand) (*admindomain.User, error) {
	name, err := admindomain.RequiredText("name", cmd.Name)
	if err != nil {
		return nil, err
	}
	email, err := admindomain.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	role, err := admindomain.ParseRole(cmd.Role)
	if err != nil {
		return nil, err
	}
	if len(cmd.Password) < minPasswordLength {
		return nil, fault.Validationf("password must be at least %d characters", minPasswordLength)
	}

	if _, err := s.users.FindByEmail(ctx, email.String()); err == nil {
		return nil, fault.Validationf("email %s is already registered", email)
	} else if !fault.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fault.Internal("failed to hash password", err)
	}
	now := time.Now().UTC()
	user := &admindomain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login never says whether the email or the password was wrong.
func (s *accountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fault.Validation("email and password are required")
	}
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if fault.IsNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, errInvalidCredentials
		}
		return nil, fault.Internal("failed to verify password", err)
	}
	token, err := s.tokens.Issue(*user)
	if err != nil {
		return nil, fault.Internal("failed to issue token", err)
	}
	if err := s.withMemberships(ctx, user); err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

func (s *accountService) Me(ctx context.Context, id string) (*admindomain.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fault.Validation("user id is required")
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.withMemberships(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *accountService) withMemberships(ctx context.Context, user *admindomain.User) error {
	kind, ok := admindomain.AssignmentKindForRole(user.Role)
	if !ok || s.assignments == nil {
		return nil
	}
	ids, err := s.assignments.RelatedIDs(ctx, kind, user.ID)
	if err != nil {
		return err
	}
	user.SetMemberships(kind, ids)
	return nil
}
