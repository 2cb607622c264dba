package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"passport-backend/internal/models"
	"passport-backend/internal/services"
	"passport-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ChargeHandler struct {
	Service *services.ChargeService
}

func NewChargeHandler(s *services.ChargeService) *ChargeHandler {
	return &ChargeHandler{Service: s}
}

// dateRequest is the body of the pause/resume/cancel operations
type dateRequest struct {
	Date string `json:"date"`
}

// ListCharges returns a client's charges with display statuses
func (h *ChargeHandler) ListCharges(w http.ResponseWriter, r *http.Request) {
	clientID, _ := strconv.Atoi(mux.Vars(r)["id"])

	charges, err := h.Service.ListCharges(r.Context(), clientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, charges)
}

func (h *ChargeHandler) CreateCharge(w http.ResponseWriter, r *http.Request) {
	clientID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	charge, err := h.Service.CreateCharge(r.Context(), clientID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, charge)
}

func (h *ChargeHandler) GetCharge(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	charge, err := h.Service.GetCharge(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Charge not found")
		return
	}
	utils.JSON(w, http.StatusOK, charge)
}

func (h *ChargeHandler) UpdateCharge(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	charge, err := h.Service.UpdateCharge(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, charge)
}

func (h *ChargeHandler) DeleteCharge(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteCharge(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// PauseCharge freezes recognition from the given date. The accounting
// reversal is posted by the database routine.
func (h *ChargeHandler) PauseCharge(w http.ResponseWriter, r *http.Request) {
	h.accountingAction(w, r, h.Service.PauseCharge, "paused")
}

func (h *ChargeHandler) ResumeCharge(w http.ResponseWriter, r *http.Request) {
	h.accountingAction(w, r, h.Service.ResumeCharge, "active")
}

func (h *ChargeHandler) CancelCharge(w http.ResponseWriter, r *http.Request) {
	h.accountingAction(w, r, h.Service.CancelCharge, "cancelled")
}

func (h *ChargeHandler) accountingAction(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, chargeID int, dateStr string) error,
	status string,
) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req dateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := action(r.Context(), id, req.Date); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": status})
}

// PreviewCancel returns the pro-rata earned/unearned split without
// posting anything.
func (h *ChargeHandler) PreviewCancel(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	date := r.URL.Query().Get("date")

	preview, err := h.Service.PreviewCancel(r.Context(), id, date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, preview)
}

// RenewalDefaults prefills the follow-up charge form
func (h *ChargeHandler) RenewalDefaults(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	defaults, err := h.Service.RenewalDefaults(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, defaults)
}
