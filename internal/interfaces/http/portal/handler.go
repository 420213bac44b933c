package portal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminapp "github.com/sand-hq/campaign-api/internal/admin/application"
	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/common"
)

// Handler wires the login endpoints and the promoter, MIS and manager
// portals to application services.
type Handler struct {
	logger      *zap.Logger
	accounts    adminapp.AccountService
	assignments adminapp.AssignmentService
	clients     adminapp.ClientService
	campaigns   adminapp.CampaignService
	forms       adminapp.FormService
	rights      adminapp.RightsService
	data        adminapp.DataService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger      *zap.Logger
	Accounts    adminapp.AccountService
	Assignments adminapp.AssignmentService
	Clients     adminapp.ClientService
	Campaigns   adminapp.CampaignService
	Forms       adminapp.FormService
	Rights      adminapp.RightsService
	Data        adminapp.DataService
}

// NewHandler constructs a portal HTTP handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		logger:      logger.Named("portal"),
		accounts:    cfg.Accounts,
		assignments: cfg.Assignments,
		clients:     cfg.Clients,
		campaigns:   cfg.Campaigns,
		forms:       cfg.Forms,
		rights:      cfg.Rights,
		data:        cfg.Data,
	}
}

// Register mounts /user and the role portals. authenticate must place the
// caller into the request context.
func (h *Handler) Register(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Post("/user/login", h.loginHandler())
	r.With(authenticate).Get("/user/me", h.meHandler())

	r.Route("/promoter", func(r chi.Router) {
		r.Use(authenticate, common.RequireRole(h.logger, admindomain.RolePromoter.String()))
		r.Get("/forms", h.promoterFormsHandler())
		r.Get("/forms/{formId}", h.promoterFormDetailHandler())
		r.Post("/forms/{formId}/data", h.promoterSubmitHandler())
	})

	r.Route("/mis", func(r chi.Router) {
		r.Use(authenticate, common.RequireRole(h.logger, admindomain.RoleMIS.String()))
		r.Get("/campaigns", h.misCampaignsHandler())
		r.Get("/forms/{formId}/data", h.misDataHandler())
	})

	r.Route("/manager", func(r chi.Router) {
		r.Use(authenticate, common.RequireRole(h.logger, admindomain.RoleManager.String()))
		r.Get("/clients", h.managerClientsHandler())
		r.Get("/clients/{clientId}/campaigns", h.managerCampaignsHandler())
	})
}

// writeForbidden は割り当て外のリソースへのアクセスを拒否する。
func (h *Handler) writeForbidden(w http.ResponseWriter, message string) {
	common.WriteError(h.logger, w, http.StatusForbidden, "Forbidden", message)
}
