// Package presenter converts domain values into the JSON shapes shared by the
// admin and portal surfaces.
package presenter

import (
	"time"

	adminapp "github.com/sand-hq/campaign-api/internal/admin/application"
	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
)

type ClientResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Website   string    `json:"website"`
	Photo     string    `json:"photo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CampaignResponse struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	ClientID  string    `json:"clientId"`
	Logo      string    `json:"logo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type FieldResponse struct {
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
	Rule     string   `json:"rule,omitempty"`
}

type FormResponse struct {
	ID             string          `json:"_id"`
	CampaignID     string          `json:"campaignId"`
	Title          string          `json:"title"`
	FormFields     []FieldResponse `json:"formFields"`
	CollectionName string          `json:"collectionName"`
	IsNested       bool            `json:"isNested"`
	MainFormID     string          `json:"mainFormId,omitempty"`
	NestedForms    []string        `json:"nestedForms"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type NestedFormResponse struct {
	MainForm FormResponse `json:"mainForm"`
	Form     FormResponse `json:"nestedForm"`
}

type RightsResponse struct {
	ID             string    `json:"_id"`
	FormID         string    `json:"formId"`
	CampaignID     string    `json:"campaignId"`
	ClientID       string    `json:"clientId"`
	EmployeeID     string    `json:"employeeId"`
	ViewData       bool      `json:"viewData"`
	DownloadData   bool      `json:"downloadData"`
	ManipulateData bool      `json:"manipulateData"`
	DownloadReport bool      `json:"downloadReport"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type RecordResponse struct {
	ID           string         `json:"_id"`
	FormID       string         `json:"formId"`
	Fields       map[string]any `json:"fields"`
	AcceptedData *bool          `json:"acceptedData,omitempty"`
	SubmittedBy  string         `json:"submittedBy,omitempty"`
	SubmittedAt  time.Time      `json:"submittedAt"`
	ReviewedAt   *time.Time     `json:"reviewedAt,omitempty"`
}

// UserResponse never carries the password hash. Membership lists are only
// present for the role that owns them.
type UserResponse struct {
	ID              string    `json:"_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Forms           *[]string `json:"forms,omitempty"`
	ListOfCampaigns *[]string `json:"listOfCampaigns,omitempty"`
	ListOfClients   *[]string `json:"listOfClients,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func Client(c admindomain.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Location:  c.Location,
		Website:   c.Website.String(),
		Photo:     c.PhotoURL.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func Clients(items []admindomain.Client) []ClientResponse {
	return mapAll(items, Client)
}

func Campaign(c admindomain.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:        c.ID,
		Title:     c.Title,
		ClientID:  c.ClientID,
		Logo:      c.LogoURL.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func Campaigns(items []admindomain.Campaign) []CampaignResponse {
	return mapAll(items, Campaign)
}

func Form(f admindomain.FormDefinition) FormResponse {
	fields := make([]FieldResponse, 0, len(f.Fields))
	for _, field := range f.Fields {
		fields = append(fields, FieldResponse{
			Title:    field.Title,
			Type:     string(field.Type),
			Options:  field.Options,
			Required: field.Required,
			Rule:     field.Rule,
		})
	}
	nested := f.NestedForms
	if nested == nil {
		nested = []string{}
	}
	return FormResponse{
		ID:             f.ID,
		CampaignID:     f.CampaignID,
		Title:          f.Title,
		FormFields:     fields,
		CollectionName: f.CollectionName,
		IsNested:       f.IsNested,
		MainFormID:     f.MainFormID,
		NestedForms:    nested,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

func Forms(items []admindomain.FormDefinition) []FormResponse {
	return mapAll(items, Form)
}

func NestedForm(result adminapp.NestedFormResult) NestedFormResponse {
	return NestedFormResponse{MainForm: Form(*result.MainForm), Form: Form(*result.Form)}
}

func Rights(r admindomain.RightsRecord) RightsResponse {
	return RightsResponse{
		ID:             r.ID,
		FormID:         r.Key.FormID,
		CampaignID:     r.Key.CampaignID,
		ClientID:       r.Key.ClientID,
		EmployeeID:     r.Key.EmployeeID,
		ViewData:       r.Flags.ViewData,
		DownloadData:   r.Flags.DownloadData,
		ManipulateData: r.Flags.ManipulateData,
		DownloadReport: r.Flags.DownloadReport,
		UpdatedAt:      r.UpdatedAt,
	}
}

func RightsList(items []admindomain.RightsRecord) []RightsResponse {
	return mapAll(items, Rights)
}

func Record(r admindomain.DynamicRecord) RecordResponse {
	fields := r.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	return RecordResponse{
		ID:           r.ID,
		FormID:       r.FormID,
		Fields:       fields,
		AcceptedData: r.AcceptedData,
		SubmittedBy:  r.SubmittedBy,
		SubmittedAt:  r.SubmittedAt,
		ReviewedAt:   r.ReviewedAt,
	}
}

func Records(items []admindomain.DynamicRecord) []RecordResponse {
	return mapAll(items, Record)
}

func User(u admindomain.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email.String(),
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
	switch u.Role {
	case admindomain.RolePromoter:
		resp.Forms = nonNil(u.Forms)
	case admindomain.RoleMIS:
		resp.ListOfCampaigns = nonNil(u.ListOfCampaigns)
	case admindomain.RoleManager:
		resp.ListOfClients = nonNil(u.ListOfClients)
	}
	return resp
}

func Users(items []admindomain.User) []UserResponse {
	return mapAll(items, User)
}

func Login(result adminapp.LoginResult) LoginResponse {
	return LoginResponse{Token: result.Token, User: User(*result.User)}
}

func mapAll[T any, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

func nonNil(ids []string) *[]string {
	out := append([]string{}, ids...)
	return &out
}
