package application

import (
	"context"
	"strings"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/fault"
)

type assignmentService struct {
	users       UserRepository
	assignments AssignmentRepository
	forms       FormRepository
	campaigns   CampaignRepository
	clients     ClientRepository
}

func NewAssignmentService(
	users UserRepository,
	assignments AssignmentRepository,
	forms FormRepository,
	campaigns CampaignRepository,
	clients ClientRepository,
) AssignmentService {
	return &assignmentService{
		users:       users,
		assignments: assignments,
		forms:       forms,
		campaigns:   campaigns,
		clients:     clients,
	}
}

// Assign links ownerID to relatedID. Adding an existing edge is a no-op.
func (s *assignmentService) Assign(ctx context.Context, kind admindomain.AssignmentKind, ownerID, relatedID string) (*admindomain.User, error) {
	owner, relatedID, err := s.resolve(ctx, kind, ownerID, relatedID)
	if err != nil {
		return nil, err
	}
	if err := s.relatedExists(ctx, kind, relatedID); err != nil {
		return nil, err
	}
	if _, err := s.assignments.Add(ctx, kind, owner.ID, relatedID); err != nil {
		return nil, err
	}
	return s.hydrate(ctx, kind, owner)
}

// Unassign removes the edge if present. The related entity may already be
// gone, so it is not looked up.
func (s *assignmentService) Unassign(ctx context.Context, kind admindomain.AssignmentKind, ownerID, relatedID string) (*admindomain.User, error) {
	owner, relatedID, err := s.resolve(ctx, kind, ownerID, relatedID)
	if err != nil {
		return nil, err
	}
	if _, err := s.assignments.Remove(ctx, kind, owner.ID, relatedID); err != nil {
		return nil, err
	}
	return s.hydrate(ctx, kind, owner)
}

func (s *assignmentService) RelatedIDs(ctx context.Context, kind admindomain.AssignmentKind, ownerID string) ([]string, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fault.Validation("ownerId is required")
	}
	return s.assignments.RelatedIDs(ctx, kind, ownerID)
}

// ListByRole returns every user with role, membership lists filled in.
func (s *assignmentService) ListByRole(ctx context.Context, role string) ([]admindomain.User, error) {
	parsed, err := admindomain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	users, err := s.users.FindByRole(ctx, parsed)
	if err != nil {
		return nil, err
	}
	kind, ok := admindomain.AssignmentKindForRole(parsed)
	if !ok || len(users) == 0 {
		return users, nil
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	related, err := s.assignments.RelatedIDsByOwner(ctx, kind, ids)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].SetMemberships(kind, related[users[i].ID])
	}
	return users, nil
}

func (s *assignmentService) resolve(ctx context.Context, kind admindomain.AssignmentKind, ownerID, relatedID string) (*admindomain.User, string, error) {
	role := kind.OwnerRole()
	if role == "" {
		return nil, "", fault.Validationf("unknown assignment kind: %s", kind)
	}
	ownerID = strings.TrimSpace(ownerID)
	relatedID = strings.TrimSpace(relatedID)
	if ownerID == "" || relatedID == "" {
		return nil, "", fault.Validationf("%sId and %s are required", role, relatedField(kind))
	}
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, "", err
	}
	if owner.Role != role {
		return nil, "", fault.NotFoundf("%s %s not found", role, ownerID)
	}
	return owner, relatedID, nil
}

func (s *assignmentService) relatedExists(ctx context.Context, kind admindomain.AssignmentKind, relatedID string) error {
	var err error
	switch kind {
	case admindomain.AssignPromoterForm:
		_, err = s.forms.FindByID(ctx, relatedID)
	case admindomain.AssignMISCampaign:
		_, err = s.campaigns.FindByID(ctx, relatedID)
	case admindomain.AssignManagerClient:
		_, err = s.clients.FindByID(ctx, relatedID)
	}
	return err
}

func (s *assignmentService) hydrate(ctx context.Context, kind admindomain.AssignmentKind, owner *admindomain.User) (*admindomain.User, error) {
	ids, err := s.assignments.RelatedIDs(ctx, kind, owner.ID)
	if err != nil {
		return nil, err
	}
	owner.SetMemberships(kind, ids)
	return owner, nil
}

func relatedField(kind admindomain.AssignmentKind) string {
	switch kind {
	case admindomain.AssignPromoterForm:
		return "formId"
	case admindomain.AssignMISCampaign:
		return "campaignId"
	case admindomain.AssignManagerClient:
		return "clientId"
	}
	return "relatedId"
}
