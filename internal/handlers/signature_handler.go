package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/interfaces"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/middleware"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/models"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/utils"
)

// SignatureHandler endpoints de firmas electrónicas
type SignatureHandler struct {
	signatureService interfaces.SignatureServiceInterface
	signatureRepo    interfaces.SignatureRepositoryInterface
}

// NewSignatureHandler crea un handler nuevo
func NewSignatureHandler(signatureService interfaces.SignatureServiceInterface, signatureRepo interfaces.SignatureRepositoryInterface) *SignatureHandler {
	return &SignatureHandler{
		signatureService: signatureService,
		signatureRepo:    signatureRepo,
	}
}

// Create maneja POST /api/v1/signatures. El actor es el usuario autenticado;
// la credencial del cuerpo se re-verifica antes de emitir la firma.
func (h *SignatureHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondJSON(w, http.StatusUnauthorized, utils.ErrorResponse{Error: "se requiere autenticación"})
		return
	}

	var req models.CreateSignatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, utils.ErrorResponse{Error: "cuerpo JSON inválido"})
		return
	}

	if err := req.Validate(); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}

	sig, err := h.signatureService.Create(claims.UserID, &req, utils.RequestMeta(r))
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, sig)
}

// Verify maneja GET /api/v1/signatures/{id}/verify
func (h *SignatureHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	resp, err := h.signatureService.VerifyByID(id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

// Invalidate maneja POST /api/v1/signatures/{id}/invalidate
func (h *SignatureHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondJSON(w, http.StatusUnauthorized, utils.ErrorResponse{Error: "se requiere autenticación"})
		return
	}

	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var req models.InvalidateSignatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, utils.ErrorResponse{Error: "cuerpo JSON inválido"})
		return
	}

	sig, err := h.signatureService.Invalidate(id, claims.UserID, req.Reason)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, sig)
}

// ListValid maneja GET /api/v1/signatures?entity_type=...&entity_id=...
// Devuelve solo las firmas vigentes de la entidad.
func (h *SignatureHandler) ListValid(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	entityType := q.Get("entity_type")
	if entityType == "" {
		utils.RespondError(w, apperrValidation("entity_type"))
		return
	}

	entityID, err := strconv.Atoi(q.Get("entity_id"))
	if err != nil {
		utils.RespondError(w, apperrValidation("entity_id"))
		return
	}

	sigs, err := h.signatureRepo.ListValid(entityType, entityID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"results": sigs,
		"count":   len(sigs),
	})
}

// pathID extrae el {id} numérico de la ruta
func pathID(r *http.Request) (int, error) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, apperrValidation("id")
	}
	return id, nil
}
