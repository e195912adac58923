package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/feastgo/backend/api/transport"
	"github.com/feastgo/backend/domain"
	"github.com/feastgo/backend/pkg/httpcontext"
	membershipUC "github.com/feastgo/backend/usecase/membership"
	userUC "github.com/feastgo/backend/usecase/user"
)

type UserHandler struct {
	baseHandler
	users       *userUC.UseCase
	memberships *membershipUC.Registry
}

func NewUserHandler(users *userUC.UseCase, memberships *membershipUC.Registry, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, logger),
		users:       users,
		memberships: memberships,
	}
}

// @Summary Register a new account
// @Tags users
// @Router /api/v1/users [post]
func (h *UserHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.users.Register(stdCtx, userUC.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, user)
}

// @Summary Get own profile
// @Tags users
// @Router /api/v1/users/me [get]
func (h *UserHandler) Me(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.users.GetProfile(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Update own profile
// @Tags users
// @Router /api/v1/users/me [put]
func (h *UserHandler) UpdateMe(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.ProfileUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.users.UpdateProfile(stdCtx, &domain.User{
		ID:        userID,
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// Subscribe handles POST/DELETE /users/{id}/subscribe.
func (h *UserHandler) Subscribe(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	authorID, _ := ctx.UserValue("id").(string)
	if authorID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing author id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if ctx.IsDelete() {
		if err := h.memberships.Remove(stdCtx, domain.RelationSubscription, userID, authorID); err != nil {
			h.respondError(ctx, err)
			return
		}
		h.respondNoContent(ctx)
		return
	}

	if err := h.memberships.Add(stdCtx, domain.RelationSubscription, userID, authorID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, nil)
}

// @Summary List subscriptions
// @Tags users
// @Router /api/v1/users/subscriptions [get]
func (h *UserHandler) Subscriptions(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.memberships.ListSubscriptions(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entries)
}
