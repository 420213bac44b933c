package portal

import (
	"context"
	"net/http"

	"github.com/sand-hq/campaign-api/internal/interfaces/http/common"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/presenter"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteFault(h.logger, w, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		result, err := h.accounts.Login(ctx, req.Email, req.Password)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to log in")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "logged in", presenter.Login(*result))
	}
}

// meHandler はトークンの主体に対応するユーザー情報を返す。
func (h *Handler) meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "Unauthorized", "authentication required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		user, err := h.accounts.Me(ctx, caller.ID)
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch user")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "user fetched", presenter.User(*user))
	}
}
