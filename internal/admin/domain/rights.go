package domain

import (
	"time"

	"github.com/sand-hq/campaign-api/internal/fault"
)

// RightsKey identifies one rights record. Ids are opaque strings.
type RightsKey struct {
	FormID     string
	CampaignID string
	ClientID   string
	EmployeeID string
}

func NewRightsKey(formID, campaignID, clientID, employeeID string) (RightsKey, error) {
	form, err := RequiredText("formId", formID)
	if err != nil {
		return RightsKey{}, err
	}
	campaign, err := RequiredText("campaignId", campaignID)
	if err != nil {
		return RightsKey{}, err
	}
	client, err := RequiredText("clientId", clientID)
	if err != nil {
		return RightsKey{}, err
	}
	employee, err := RequiredText("employeeId", employeeID)
	if err != nil {
		return RightsKey{}, err
	}
	return RightsKey{FormID: form, CampaignID: campaign, ClientID: client, EmployeeID: employee}, nil
}

type RightsFlags struct {
	ViewData       bool
	DownloadData   bool
	ManipulateData bool
	DownloadReport bool
}

// RightsPatch holds the flags a caller supplied; nil means leave unchanged.
type RightsPatch struct {
	ViewData       *bool
	DownloadData   *bool
	ManipulateData *bool
	DownloadReport *bool
}

func (p RightsPatch) IsEmpty() bool {
	return p.ViewData == nil && p.DownloadData == nil && p.ManipulateData == nil && p.DownloadReport == nil
}

// Validate rejects a patch that would change nothing.
func (p RightsPatch) Validate() error {
	if p.IsEmpty() {
		return fault.Validation("at least one of viewData, downloadData, manipulateData, downloadReport is required")
	}
	return nil
}

// Apply merges the supplied flags over current.
func (p RightsPatch) Apply(current RightsFlags) RightsFlags {
	if p.ViewData != nil {
		current.ViewData = *p.ViewData
	}
	if p.DownloadData != nil {
		current.DownloadData = *p.DownloadData
	}
	if p.ManipulateData != nil {
		current.ManipulateData = *p.ManipulateData
	}
	if p.DownloadReport != nil {
		current.DownloadReport = *p.DownloadReport
	}
	return current
}

// RightsRecord grants capabilities on one form's data to one employee.
type RightsRecord struct {
	ID        string
	Key       RightsKey
	Flags     RightsFlags
	CreatedAt time.Time
	UpdatedAt time.Time
}
