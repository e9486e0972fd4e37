package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/models"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/utils"
)

// UserService operaciones de sesión que necesita el handler
type UserService interface {
	Login(req *models.LoginRequest) (*models.LoginResponse, error)
}

// UserHandler endpoints de sesión
type UserHandler struct {
	userService UserService
}

// NewUserHandler crea un handler nuevo
func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Login maneja POST /api/v1/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, utils.ErrorResponse{Error: "cuerpo JSON inválido"})
		return
	}

	if err := req.Validate(); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.userService.Login(&req)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}
