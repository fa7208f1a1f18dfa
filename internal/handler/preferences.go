package handler

import (
	"net/http"

	"github.com/natsalete/Password-Generator/internal/middleware"
	"github.com/natsalete/Password-Generator/internal/model"
	"github.com/natsalete/Password-Generator/internal/service"
)

// PreferencesHandler serves an account's saved generator settings.
type PreferencesHandler struct {
	service *service.PreferencesService
}

func NewPreferencesHandler(svc *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{service: svc}
}

// HandleGet handles GET /api/v1/preferences requests.
func (h *PreferencesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	resp, err := h.service.Get(r.Context(), accountID)
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandlePut handles PUT /api/v1/preferences requests.
func (h *PreferencesHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.PreferencesRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	resp, err := h.service.Save(r.Context(), accountID, req)
	if err != nil {
		writeGenerateError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGenerate handles POST /api/v1/preferences/generate requests.
func (h *PreferencesHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.GenerateRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	resp, err := h.service.Generate(r.Context(), accountID, req)
	if err != nil {
		writeGenerateError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
