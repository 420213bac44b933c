package portal

import (
	"context"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/sand-hq/campaign-api/internal/admin/application"
	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/common"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/presenter"
)

// assigned は呼び出し元に kind で割り当てられた ID 一覧を返す。
// RequireRole の後段でのみ呼ばれるため、ユーザーは必ずコンテキストにある。
func (h *Handler) assigned(ctx context.Context, r *http.Request, kind admindomain.AssignmentKind) (common.AuthenticatedUser, []string, error) {
	caller, _ := common.UserFromContext(r.Context())
	ids, err := h.assignments.RelatedIDs(ctx, kind, caller.ID)
	return caller, ids, err
}

func (h *Handler) promoterFormsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		_, ids, err := h.assigned(ctx, r, admindomain.AssignPromoterForm)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch assignments")
			return
		}
		forms, err := h.forms.ListByIDs(ctx, ids)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch forms")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "forms fetched", presenter.Forms(forms))
	}
}

func (h *Handler) promoterFormDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "formId")

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		_, ids, err := h.assigned(ctx, r, admindomain.AssignPromoterForm)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch assignments")
			return
		}
		if !slices.Contains(ids, formID) {
			h.writeForbidden(w, "form is not assigned to you")
			return
		}
		form, err := h.forms.Detail(ctx, formID)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch form")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "form fetched", presenter.Form(*form))
	}
}

// promoterSubmitHandler stores a submission for a form assigned to the caller.
func (h *Handler) promoterSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "formId")

		var payload map[string]any
		if err := common.DecodeJSON(r, &payload); err != nil {
			common.WriteFault(h.logger, w, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		caller, ids, err := h.assigned(ctx, r, admindomain.AssignPromoterForm)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch assignments")
			return
		}
		if !slices.Contains(ids, formID) {
			h.writeForbidden(w, "form is not assigned to you")
			return
		}

		record, err := h.data.SubmitToForm(ctx, formID, adminapp.SubmitDataCommand{
			Payload:     payload,
			SubmittedBy: caller.ID,
		})
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to store data")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusCreated, "data stored", presenter.Record(*record))
	}
}

func (h *Handler) misCampaignsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		_, ids, err := h.assigned(ctx, r, admindomain.AssignMISCampaign)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch assignments")
			return
		}
		campaigns, err := h.campaigns.ListByIDs(ctx, ids)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch campaigns")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "campaigns fetched", presenter.Campaigns(campaigns))
	}
}

// misDataHandler requires a rights record granting viewData on the form.
func (h *Handler) misDataHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "formId")
		caller, _ := common.UserFromContext(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		allowed, err := h.rights.CanView(ctx, formID, caller.ID)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to check rights")
			return
		}
		if !allowed {
			h.writeForbidden(w, "viewData right is required")
			return
		}
		records, err := h.data.ListForForm(ctx, formID)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch data")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "data fetched", presenter.Records(records))
	}
}

func (h *Handler) managerClientsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		_, ids, err := h.assigned(ctx, r, admindomain.AssignManagerClient)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch assignments")
			return
		}
		clients, err := h.clients.ListByIDs(ctx, ids)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch clients")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "clients fetched", presenter.Clients(clients))
	}
}

func (h *Handler) managerCampaignsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := chi.URLParam(r, "clientId")

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		_, ids, err := h.assigned(ctx, r, admindomain.AssignManagerClient)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch assignments")
			return
		}
		if !slices.Contains(ids, clientID) {
			h.writeForbidden(w, "client is not assigned to you")
			return
		}
		campaigns, err := h.campaigns.ListForClient(ctx, clientID)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch campaigns")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "campaigns fetched", presenter.Campaigns(campaigns))
	}
}
