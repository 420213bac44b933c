package admin

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminapp "github.com/sand-hq/campaign-api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger      *zap.Logger
	clients     adminapp.ClientService
	campaigns   adminapp.CampaignService
	forms       adminapp.FormService
	rights      adminapp.RightsService
	data        adminapp.DataService
	assignments adminapp.AssignmentService
	accounts    adminapp.AccountService
	dashboard   adminapp.DashboardService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger      *zap.Logger
	Clients     adminapp.ClientService
	Campaigns   adminapp.CampaignService
	Forms       adminapp.FormService
	Rights      adminapp.RightsService
	Data        adminapp.DataService
	Assignments adminapp.AssignmentService
	Accounts    adminapp.AccountService
	Dashboard   adminapp.DashboardService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		logger:      logger.Named("admin"),
		clients:     cfg.Clients,
		campaigns:   cfg.Campaigns,
		forms:       cfg.Forms,
		rights:      cfg.Rights,
		data:        cfg.Data,
		assignments: cfg.Assignments,
		accounts:    cfg.Accounts,
		dashboard:   cfg.Dashboard,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard", h.dashboardHandler())

	r.Post("/clients", h.clientCreateHandler())
	r.Get("/clients", h.clientListHandler())
	r.Get("/clients/{id}", h.clientDetailHandler())
	r.Delete("/clients/{id}", h.clientDeleteHandler())
	r.Get("/clients/{id}/campaigns", h.clientCampaignsHandler())

	r.Post("/campaigns", h.campaignCreateHandler())
	r.Get("/campaigns", h.campaignRecentHandler())
	r.Get("/campaigns/{id}", h.campaignDetailHandler())
	r.Delete("/campaigns/{id}", h.campaignDeleteHandler())
	r.Get("/campaigns/{id}/forms", h.campaignFormsHandler())

	r.Post("/forms", h.formCreateHandler())
	r.Get("/forms/{id}", h.formDetailHandler())
	r.Post("/forms/{id}/nested", h.nestedFormCreateHandler())
	r.Get("/forms/{id}/nested", h.nestedFormListHandler())

	r.Post("/assignments/{kind}", h.assignHandler())
	r.Delete("/assignments/{kind}", h.unassignHandler())

	r.Get("/users", h.userListHandler())
	r.Post("/users", h.userCreateHandler())

	r.Post("/rights", h.rightsGrantHandler())
	r.Patch("/rights", h.rightsUpdateHandler())
	r.Get("/rights", h.rightsListHandler())

	r.Patch("/data/review", h.dataReviewHandler())
	r.Post("/data/{collectionName}", h.dataSubmitHandler())
	r.Get("/data/{collectionName}", h.dataListHandler())
}
