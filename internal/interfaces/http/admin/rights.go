package admin

import (
	"context"
	"net/http"
	"strings"

	adminapp "github.com/sand-hq/campaign-api/internal/admin/application"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/common"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/presenter"
)

func (h *Handler) rightsGrantHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rightsRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteFault(h.logger, w, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		record, err := h.rights.Grant(ctx, adminapp.GrantRightsCommand{
			FormID:     req.FormID,
			CampaignID: req.CampaignID,
			ClientID:   req.ClientID,
			EmployeeID: req.EmployeeID,
			Flags:      req.patch(),
		})
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to grant rights")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusCreated, "rights granted", presenter.Rights(*record))
	}
}

// rightsUpdateHandler only touches the flags present in the body.
func (h *Handler) rightsUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rightsRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteFault(h.logger, w, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		record, err := h.rights.Update(ctx, adminapp.UpdateRightsCommand{
			FormID:     req.FormID,
			CampaignID: req.CampaignID,
			ClientID:   req.ClientID,
			EmployeeID: req.EmployeeID,
			Patch:      req.patch(),
		})
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to update rights")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "rights updated", presenter.Rights(*record))
	}
}

func (h *Handler) rightsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		formID := strings.TrimSpace(query.Get("formId"))
		employeeID := strings.TrimSpace(query.Get("employeeId"))

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		records, err := h.rights.List(ctx, formID, employeeID)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch rights")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "rights fetched", presenter.RightsList(records))
	}
}
