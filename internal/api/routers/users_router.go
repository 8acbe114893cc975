package routers

import (
	"net/http"

	"expense_share/internal/api/handlers/users"
)

func usersRouter(mux *http.ServeMux, h *users.Handler) {
	mux.HandleFunc("POST /users", h.CreateUserHandler)
	mux.HandleFunc("GET /users", h.ListUsersHandler)
	mux.HandleFunc("GET /u/{user_id}", h.GetUserHandler)
	mux.HandleFunc("PATCH /u/{user_id}", h.UpdateUserHandler)
}
