package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/sand-hq/campaign-api/internal/admin/application"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/common"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/presenter"
)

func (h *Handler) formCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req formCreateRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteFault(h.logger, w, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		form, err := h.forms.Create(ctx, adminapp.CreateFormCommand{
			CampaignID: req.CampaignID,
			Fields:     req.fieldCommands(),
		})
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to create form")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusCreated, "form created", presenter.Form(*form))
	}
}

func (h *Handler) formDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		form, err := h.forms.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch form")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "form fetched", presenter.Form(*form))
	}
}

// campaignFormsHandler lists a campaign's forms. ?topLevelOnly=true hides nested forms.
func (h *Handler) campaignFormsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topLevelOnly := common.ParseBool(r.URL.Query().Get("topLevelOnly"), false)

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		forms, err := h.forms.ListForCampaign(ctx, chi.URLParam(r, "id"), topLevelOnly)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch forms")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "forms fetched", presenter.Forms(forms))
	}
}

func (h *Handler) nestedFormCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req formCreateRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteFault(h.logger, w, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		result, err := h.forms.CreateNested(ctx, adminapp.CreateNestedFormCommand{
			MainFormID: chi.URLParam(r, "id"),
			Fields:     req.fieldCommands(),
		})
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to create nested form")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusCreated, "nested form created", presenter.NestedForm(*result))
	}
}

func (h *Handler) nestedFormListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		forms, err := h.forms.Nested(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch nested forms")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "nested forms fetched", presenter.Forms(forms))
	}
}
