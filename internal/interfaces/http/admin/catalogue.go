package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/sand-hq/campaign-api/internal/admin/application"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/common"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/presenter"
)

// clientCreateHandler accepts multipart (clientPhoto file) or JSON (photo URL).
func (h *Handler) clientCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cmd adminapp.CreateClientCommand
		closePhoto := func() {}
		if isMultipart(r) {
			photo, closeFn, err := readPhoto(r, "clientPhoto", "photo")
			if err != nil {
				common.WriteFault(h.logger, w, err, "failed to read upload")
				return
			}
			closePhoto = closeFn
			cmd = adminapp.CreateClientCommand{
				Name:     formValue(r, "name", "clientName"),
				Location: formValue(r, "location", "clientLocation"),
				Website:  formValue(r, "website", "clientWebsite"),
				PhotoURL: formValue(r, "photo"),
				Photo:    photo,
			}
		} else {
			var req clientCreateRequest
			if err := common.DecodeJSON(r, &req); err != nil {
				common.WriteFault(h.logger, w, err, "")
				return
			}
			cmd = adminapp.CreateClientCommand{Name: req.Name, Location: req.Location, Website: req.Website, PhotoURL: req.Photo}
		}
		defer closePhoto()

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		client, err := h.clients.Create(ctx, cmd)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to create client")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusCreated, "client created", presenter.Client(*client))
	}
}

func (h *Handler) clientListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		clients, err := h.clients.List(ctx)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch clients")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "clients fetched", presenter.Clients(clients))
	}
}

func (h *Handler) clientDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		client, err := h.clients.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch client")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "client fetched", presenter.Client(*client))
	}
}

func (h *Handler) clientDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		client, err := h.clients.Delete(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to delete client")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "client deleted", presenter.Client(*client))
	}
}

func (h *Handler) clientCampaignsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		campaigns, err := h.campaigns.ListForClient(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch campaigns")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "campaigns fetched", presenter.Campaigns(campaigns))
	}
}

// campaignCreateHandler accepts multipart (campaignPhoto file) or JSON (logo URL).
func (h *Handler) campaignCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cmd adminapp.CreateCampaignCommand
		closeLogo := func() {}
		if isMultipart(r) {
			logo, closeFn, err := readPhoto(r, "campaignPhoto", "logo")
			if err != nil {
				common.WriteFault(h.logger, w, err, "failed to read upload")
				return
			}
			closeLogo = closeFn
			cmd = adminapp.CreateCampaignCommand{
				Title:    formValue(r, "title", "campaignTitle"),
				ClientID: formValue(r, "clientId"),
				LogoURL:  formValue(r, "logo"),
				Logo:     logo,
			}
		} else {
			var req campaignCreateRequest
			if err := common.DecodeJSON(r, &req); err != nil {
				common.WriteFault(h.logger, w, err, "")
				return
			}
			cmd = adminapp.CreateCampaignCommand{Title: req.Title, ClientID: req.ClientID, LogoURL: req.Logo}
		}
		defer closeLogo()

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		campaign, err := h.campaigns.Create(ctx, cmd)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to create campaign")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusCreated, "campaign created", presenter.Campaign(*campaign))
	}
}

// campaignRecentHandler returns the newest campaigns, 4 unless ?limit= says otherwise.
func (h *Handler) campaignRecentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := common.ParsePositiveInt(r.URL.Query().Get("limit"), adminapp.DefaultRecentCampaigns)

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		campaigns, err := h.campaigns.Recent(ctx, limit)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch campaigns")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "campaigns fetched", presenter.Campaigns(campaigns))
	}
}

func (h *Handler) campaignDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		campaign, err := h.campaigns.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch campaign")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "campaign fetched", presenter.Campaign(*campaign))
	}
}

func (h *Handler) campaignDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		campaign, err := h.campaigns.Delete(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to delete campaign")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "campaign deleted", presenter.Campaign(*campaign))
	}
}

func (h *Handler) dashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		counts, err := h.dashboard.Counts(ctx)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch dashboard counts")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "dashboard fetched", counts)
	}
}
