package users

import (
	"context"
	"net/http"
	"time"

	"expense_share/internal/api/handlers"
	"expense_share/internal/models"
	"expense_share/pkg/utils"
)

type UserService interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	Get(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, upd models.UserUpdate) (models.User, error)
}

type Handler struct {
	users   UserService
	timeout time.Duration
}

func NewHandler(users UserService, timeout time.Duration) *Handler {
	return &Handler{users: users, timeout: timeout}
}

// FUNC TO CREATE A USER
func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Mobile string `json:"mobile"`
	}
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	ctx, cancel := handlers.RequestContext(r, h.timeout)
	defer cancel()

	user, err := h.users.Create(ctx, models.User{Name: req.Name, Email: req.Email, Mobile: req.Mobile})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, "user created", user)
}

// FUNC TO LIST USERS
func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handlers.RequestContext(r, h.timeout)
	defer cancel()

	users, err := h.users.List(ctx)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "", users)
}

// FUNC TO GET A USER BY ID
func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handlers.RequestContext(r, h.timeout)
	defer cancel()

	user, err := h.users.Get(ctx, r.PathValue("user_id"))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "", user)
}

// FUNC TO UPDATE A USER'S NAME OR MOBILE
func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	var upd models.UserUpdate
	if err := handlers.DecodeJSON(w, r, &upd); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	ctx, cancel := handlers.RequestContext(r, h.timeout)
	defer cancel()

	user, err := h.users.Update(ctx, r.PathValue("user_id"), upd)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "user updated", user)
}
