package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/sand-hq/campaign-api/internal/admin/application"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/common"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/presenter"
)

// dataSubmitHandler stores the JSON body as-is into the named dynamic collection.
func (h *Handler) dataSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := common.DecodeJSON(r, &payload); err != nil {
			common.WriteFault(h.logger, w, err, "")
			return
		}

		var submittedBy string
		if user, ok := common.UserFromContext(r.Context()); ok {
			submittedBy = user.ID
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		record, err := h.data.Submit(ctx, adminapp.SubmitDataCommand{
			CollectionName: chi.URLParam(r, "collectionName"),
			Payload:        payload,
			SubmittedBy:    submittedBy,
		})
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to store data")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusCreated, "data stored", presenter.Record(*record))
	}
}

func (h *Handler) dataListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		records, err := h.data.List(ctx, chi.URLParam(r, "collectionName"))
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch data")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "data fetched", presenter.Records(records))
	}
}

func (h *Handler) dataReviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reviewRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteFault(h.logger, w, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		record, err := h.data.Review(ctx, adminapp.ReviewDataCommand{
			FormID:   req.FormID,
			ItemID:   req.ItemID,
			Accepted: req.AcceptData,
		})
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to review data")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "data reviewed", presenter.Record(*record))
	}
}
