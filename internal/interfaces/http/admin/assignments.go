package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/fault"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/common"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/presenter"
)

var assignmentKinds = map[string]admindomain.AssignmentKind{
	"promoter-forms":  admindomain.AssignPromoterForm,
	"mis-campaigns":   admindomain.AssignMISCampaign,
	"manager-clients": admindomain.AssignManagerClient,
}

// pair はパスの kind とボディからオーナーID・関連IDを決定する。
// 汎用の ownerId/relatedId が無い場合はロール別の名前を使う。
func (req assignmentRequest) pair(kind admindomain.AssignmentKind) (string, string) {
	owner := strings.TrimSpace(req.OwnerID)
	related := strings.TrimSpace(req.RelatedID)
	switch kind {
	case admindomain.AssignPromoterForm:
		owner = firstNonEmpty(owner, req.PromoterID)
		related = firstNonEmpty(related, req.FormID)
	case admindomain.AssignMISCampaign:
		owner = firstNonEmpty(owner, req.MISID)
		related = firstNonEmpty(related, req.CampaignID)
	case admindomain.AssignManagerClient:
		owner = firstNonEmpty(owner, req.ManagerID)
		related = firstNonEmpty(related, req.ClientID)
	}
	return owner, related
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// decodeAssignment は kind とリクエストボディを読み取り、両IDが揃っているか検証する。
func decodeAssignment(r *http.Request) (admindomain.AssignmentKind, string, string, error) {
	kind, ok := assignmentKinds[chi.URLParam(r, "kind")]
	if !ok {
		return "", "", "", fault.NotFoundf("assignment type %q not found", chi.URLParam(r, "kind"))
	}
	var req assignmentRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		return "", "", "", err
	}
	owner, related := req.pair(kind)
	if owner == "" || related == "" {
		return "", "", "", fault.Validation("owner and related ids are required")
	}
	return kind, owner, related, nil
}

func (h *Handler) assignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, owner, related, err := decodeAssignment(r)
		if err != nil {
			common.WriteFault(h.logger, w, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		user, err := h.assignments.Assign(ctx, kind, owner, related)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to assign")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "assigned", presenter.User(*user))
	}
}

func (h *Handler) unassignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, owner, related, err := decodeAssignment(r)
		if err != nil {
			common.WriteFault(h.logger, w, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		user, err := h.assignments.Unassign(ctx, kind, owner, related)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to unassign")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "unassigned", presenter.User(*user))
	}
}
