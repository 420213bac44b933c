package application

import (
	"context"
	"io"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
)

// ClientRepository persists clients.
type ClientRepository interface {
	Create(ctx context.Context, client *admindomain.Client) error
	FindByID(ctx context.Context, id string) (*admindomain.Client, error)
	FindByIDs(ctx context.Context, ids []string) ([]admindomain.Client, error)
	FindAll(ctx context.Context) ([]admindomain.Client, error)
	Delete(ctx context.Context, id string) (*admindomain.Client, error)
	Count(ctx context.Context) (int64, error)
}

// CampaignRepository persists campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *admindomain.Campaign) error
	FindByID(ctx context.Context, id string) (*admindomain.Campaign, error)
	FindByIDs(ctx context.Context, ids []string) ([]admindomain.Campaign, error)
	FindRecent(ctx context.Context, limit int) ([]admindomain.Campaign, error)
	FindByClient(ctx context.Context, clientID string) ([]admindomain.Campaign, error)
	Delete(ctx context.Context, id string) (*admindomain.Campaign, error)
	Count(ctx context.Context) (int64, error)
}

// FormRepository persists form definitions. Create assigns both ID and
// CollectionName before inserting.
type FormRepository interface {
	Create(ctx context.Context, form *admindomain.FormDefinition) error
	FindByID(ctx context.Context, id string) (*admindomain.FormDefinition, error)
	FindByIDs(ctx context.Context, ids []string) ([]admindomain.FormDefinition, error)
	FindByCampaign(ctx context.Context, campaignID string, topLevelOnly bool) ([]admindomain.FormDefinition, error)
	FindByCollectionName(ctx context.Context, name string) (*admindomain.FormDefinition, error)
	AddNested(ctx context.Context, parentID, childID string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// CollectionProvisioner creates and drops the dynamic collections backing forms.
type CollectionProvisioner interface {
	CreateCollection(ctx context.Context, name string) error
	DropCollection(ctx context.Context, name string) error
}

// RecordRepository reads and writes submissions in dynamic collections.
type RecordRepository interface {
	Insert(ctx context.Context, collection string, record *admindomain.DynamicRecord) error
	FindAll(ctx context.Context, collection string) ([]admindomain.DynamicRecord, error)
	SetAccepted(ctx context.Context, collection, itemID string, accepted bool) (*admindomain.DynamicRecord, error)
}

// RightsRepository persists rights records.
type RightsRepository interface {
	Create(ctx context.Context, record *admindomain.RightsRecord) error
	Update(ctx context.Context, key admindomain.RightsKey, patch admindomain.RightsPatch) (*admindomain.RightsRecord, error)
	FindByFormAndEmployee(ctx context.Context, formID, employeeID string) ([]admindomain.RightsRecord, error)
}

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *admindomain.User) error
	FindByID(ctx context.Context, id string) (*admindomain.User, error)
	FindByEmail(ctx context.Context, email string) (*admindomain.User, error)
	FindByRole(ctx context.Context, role admindomain.Role) ([]admindomain.User, error)
	CountByRole(ctx context.Context, role admindomain.Role) (int64, error)
}

// AssignmentRepository stores unique (kind, owner, related) edges.
// Add and Remove report whether the graph changed.
type AssignmentRepository interface {
	Add(ctx context.Context, kind admindomain.AssignmentKind, ownerID, relatedID string) (bool, error)
	Remove(ctx context.Context, kind admindomain.AssignmentKind, ownerID, relatedID string) (bool, error)
	RelatedIDs(ctx context.Context, kind admindomain.AssignmentKind, ownerID string) ([]string, error)
	RelatedIDsByOwner(ctx context.Context, kind admindomain.AssignmentKind, ownerIDs []string) (map[string][]string, error)
}

// PhotoUploader stores an image and returns its public URL.
type PhotoUploader interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(user admindomain.User) (string, error)
}

// ClientService describes client use-cases.
type ClientService interface {
	Create(ctx context.Context, cmd CreateClientCommand) (*admindomain.Client, error)
	Detail(ctx context.Context, id string) (*admindomain.Client, error)
	List(ctx context.Context) ([]admindomain.Client, error)
	ListByIDs(ctx context.Context, ids []string) ([]admindomain.Client, error)
	Delete(ctx context.Context, id string) (*admindomain.Client, error)
}

// CampaignService describes campaign use-cases.
type CampaignService interface {
	Create(ctx context.Context, cmd CreateCampaignCommand) (*admindomain.Campaign, error)
	Detail(ctx context.Context, id string) (*admindomain.Campaign, error)
	Recent(ctx context.Context, limit int) ([]admindomain.Campaign, error)
	ListForClient(ctx context.Context, clientID string) ([]admindomain.Campaign, error)
	ListByIDs(ctx context.Context, ids []string) ([]admindomain.Campaign, error)
	Delete(ctx context.Context, id string) (*admindomain.Campaign, error)
}

// FormService describes the form schema registry.
type FormService interface {
	Create(ctx context.Context, cmd CreateFormCommand) (*admindomain.FormDefinition, error)
	CreateNested(ctx context.Context, cmd CreateNestedFormCommand) (*NestedFormResult, error)
	Nested(ctx context.Context, mainFormID string) ([]admindomain.FormDefinition, error)
	ListForCampaign(ctx context.Context, campaignID string, topLevelOnly bool) ([]admindomain.FormDefinition, error)
	ListByIDs(ctx context.Context, ids []string) ([]admindomain.FormDefinition, error)
	Detail(ctx context.Context, id string) (*admindomain.FormDefinition, error)
}

// RightsService describes the rights ledger.
type RightsService interface {
	Grant(ctx context.Context, cmd GrantRightsCommand) (*admindomain.RightsRecord, error)
	Update(ctx context.Context, cmd UpdateRightsCommand) (*admindomain.RightsRecord, error)
	List(ctx context.Context, formID, employeeID string) ([]admindomain.RightsRecord, error)
	CanView(ctx context.Context, formID, employeeID string) (bool, error)
}

// DataService describes the dynamic data store.
type DataService interface {
	Submit(ctx context.Context, cmd SubmitDataCommand) (*admindomain.DynamicRecord, error)
	SubmitToForm(ctx context.Context, formID string, cmd SubmitDataCommand) (*admindomain.DynamicRecord, error)
	List(ctx context.Context, collectionName string) ([]admindomain.DynamicRecord, error)
	ListForForm(ctx context.Context, formID string) ([]admindomain.DynamicRecord, error)
	Review(ctx context.Context, cmd ReviewDataCommand) (*admindomain.DynamicRecord, error)
}

// AssignmentService describes the assignment graph.
type AssignmentService interface {
	Assign(ctx context.Context, kind admindomain.AssignmentKind, ownerID, relatedID string) (*admindomain.User, error)
	Unassign(ctx context.Context, kind admindomain.AssignmentKind, ownerID, relatedID string) (*admindomain.User, error)
	RelatedIDs(ctx context.Context, kind admindomain.AssignmentKind, ownerID string) ([]string, error)
	ListByRole(ctx context.Context, role string) ([]admindomain.User, error)
}

// AccountService describes account creation and login.
type AccountService interface {
	CreateUser(ctx context.Context, cmd CreateUserCommand) (*admindomain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Me(ctx context.Context, id string) (*admindomain.User, error)
}

// DashboardService aggregates catalogue counts.
type DashboardService interface {
	Counts(ctx context.Context) (DashboardCounts, error)
}

// PhotoUpload is an uploaded image awaiting storage.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// CreateClientCommand contains inputs for client creation. PhotoURL wins over Photo.
type CreateClientCommand struct {
	Name     string
	Location string
	Website  string
	PhotoURL string
	Photo    *PhotoUpload
}

// CreateCampaignCommand contains inputs for campaign creation. LogoURL wins over Logo.
type CreateCampaignCommand struct {
	Title    string
	ClientID string
	LogoURL  string
	Logo     *PhotoUpload
}

// FieldCommand is one raw field from the form builder.
type FieldCommand struct {
	Title    string
	Type     string
	Options  []string
	Required bool
	Rule     string
}

type CreateFormCommand struct {
	CampaignID string
	Fields     []FieldCommand
}

type CreateNestedFormCommand struct {
	MainFormID string
	Fields     []FieldCommand
}

// NestedFormResult returns the created child and its parent after linking.
type NestedFormResult struct {
	MainForm *admindomain.FormDefinition
	Form     *admindomain.FormDefinition
}

type GrantRightsCommand struct {
	FormID     string
	CampaignID string
	ClientID   string
	EmployeeID string
	Flags      admindomain.RightsPatch
}

type UpdateRightsCommand struct {
	FormID     string
	CampaignID string
	ClientID   string
	EmployeeID string
	Patch      admindomain.RightsPatch
}

type SubmitDataCommand struct {
	CollectionName string
	Payload        map[string]any
	SubmittedBy    string
}

type ReviewDataCommand struct {
	FormID   string
	ItemID   string
	Accepted *bool
}

type CreateUserCommand struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type LoginResult struct {
	Token string
	User  *admindomain.User
}

type DashboardCounts struct {
	Clients   int64 `json:"numberOfClients"`
	Campaigns int64 `json:"numberOfCampaigns"`
	Forms     int64 `json:"numberOfForms"`
	Promoters int64 `json:"numberOfPromoters"`
}
