package admin

import (
	adminapp "github.com/sand-hq/campaign-api/internal/admin/application"
	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
)

type clientCreateRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Website  string `json:"website"`
	Photo    string `json:"photo"`
}

type campaignCreateRequest struct {
	Title    string `json:"title"`
	ClientID string `json:"clientId"`
	Logo     string `json:"logo"`
}

type fieldRequest struct {
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
	Rule     string   `json:"rule"`
}

type formCreateRequest struct {
	CampaignID string         `json:"campaignId"`
	FormFields []fieldRequest `json:"formFields"`
	Fields     []fieldRequest `json:"fields"`
}

// fieldCommands は formFields を優先し、無ければ fields を使う。
func (r formCreateRequest) fieldCommands() []adminapp.FieldCommand {
	fields := r.FormFields
	if len(fields) == 0 {
		fields = r.Fields
	}
	out := make([]adminapp.FieldCommand, 0, len(fields))
	for _, f := range fields {
		out = append(out, adminapp.FieldCommand{
			Title:    f.Title,
			Type:     f.Type,
			Options:  f.Options,
			Required: f.Required,
			Rule:     f.Rule,
		})
	}
	return out
}

type rightsRequest struct {
	FormID         string `json:"formId"`
	CampaignID     string `json:"campaignId"`
	ClientID       string `json:"clientId"`
	EmployeeID     string `json:"employeeId"`
	ViewData       *bool  `json:"viewData"`
	DownloadData   *bool  `json:"downloadData"`
	ManipulateData *bool  `json:"manipulateData"`
	DownloadReport *bool  `json:"downloadReport"`
}

func (r rightsRequest) patch() admindomain.RightsPatch {
	return admindomain.RightsPatch{
		ViewData:       r.ViewData,
		DownloadData:   r.DownloadData,
		ManipulateData: r.ManipulateData,
		DownloadReport: r.DownloadReport,
	}
}

type reviewRequest struct {
	ItemID     string `json:"itemId"`
	FormID     string `json:"formId"`
	AcceptData *bool  `json:"acceptData"`
}

// assignmentRequest accepts the role specific id names as well as the
// generic ownerId/relatedId pair.
type assignmentRequest struct {
	OwnerID    string `json:"ownerId"`
	RelatedID  string `json:"relatedId"`
	PromoterID string `json:"promoterId"`
	MISID      string `json:"misId"`
	ManagerID  string `json:"managerId"`
	FormID     string `json:"formId"`
	CampaignID string `json:"campaignId"`
	ClientID   string `json:"clientId"`
}

type userCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
