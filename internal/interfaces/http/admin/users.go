package admin

import (
	"context"
	"net/http"

	adminapp "github.com/sand-hq/campaign-api/internal/admin/application"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/common"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/presenter"
)

// userListHandler lists users of ?role= with their memberships.
func (h *Handler) userListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		users, err := h.assignments.ListByRole(ctx, r.URL.Query().Get("role"))
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to fetch users")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusOK, "users fetched", presenter.Users(users))
	}
}

func (h *Handler) userCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userCreateRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteFault(h.logger, w, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		user, err := h.accounts.CreateUser(ctx, adminapp.CreateUserCommand{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			common.WriteFault(h.logger, w, err, "failed to create user")
			return
		}
		common.WriteSuccess(h.logger, w, http.StatusCreated, "user created", presenter.User(*user))
	}
}
