package domain

import (
	"strings"
	"time"

	"github.com/sand-hq/campaign-api/internal/fault"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RolePromoter Role = "promoter"
	RoleMIS      Role = "mis"
	RoleManager  Role = "manager"
)

func ParseRole(value string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(value))); r {
	case RoleAdmin, RolePromoter, RoleMIS, RoleManager:
		return r, nil
	case "":
		return "", fault.Validation("role is required")
	default:
		return "", fault.Validationf("unknown role: %s", value)
	}
}

func (r Role) String() string {
	return string(r)
}

// User is any account of the system. The membership lists are only
// populated for the matching role.
type User struct {
	ID              string
	Name            string
	Email           Email
	PasswordHash    string
	Role            Role
	Forms           []string
	ListOfCampaigns []string
	ListOfClients   []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AssignmentKind names one edge type of the assignment graph.
type AssignmentKind string

const (
	AssignPromoterForm  AssignmentKind = "promoter_form"
	AssignMISCampaign   AssignmentKind = "mis_campaign"
	AssignManagerClient AssignmentKind = "manager_client"
)

func (k AssignmentKind) OwnerRole() Role {
	switch k {
	case AssignPromoterForm:
		return RolePromoter
	case AssignMISCampaign:
		return RoleMIS
	case AssignManagerClient:
		return RoleManager
	}
	return ""
}

// AssignmentKindForRole is the edge type owned by role, if any.
func AssignmentKindForRole(role Role) (AssignmentKind, bool) {
	switch role {
	case RolePromoter:
		return AssignPromoterForm, true
	case RoleMIS:
		return AssignMISCampaign, true
	case RoleManager:
		return AssignManagerClient, true
	}
	return "", false
}

// SetMemberships stores related ids in the list matching kind.
func (u *User) SetMemberships(kind AssignmentKind, ids []string) {
	list := append([]string{}, ids...)
	switch kind {
	case AssignPromoterForm:
		u.Forms = list
	case AssignMISCampaign:
		u.ListOfCampaigns = list
	case AssignManagerClient:
		u.ListOfClients = list
	}
}

// Assignment is one unique (kind, owner, related) edge.
type Assignment struct {
	Kind      AssignmentKind
	OwnerID   string
	RelatedID string
	CreatedAt time.Time
}
