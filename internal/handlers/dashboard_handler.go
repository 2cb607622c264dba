package handlers

import (
	"net/http"

	"passport-backend/internal/services"
	"passport-backend/pkg/utils"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(s *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

// GetMetrics returns the subscription KPIs: MRR series, totals, debt,
// ARPU, LTV and churn.
func (h *DashboardHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.Service.GetMetrics(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, metrics)
}

// GetChurnSeries returns the monthly new/at-risk/churned decomposition
func (h *DashboardHandler) GetChurnSeries(w http.ResponseWriter, r *http.Request) {
	series, err := h.Service.GetChurnSeries(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, series)
}

// GetWeeklyClients returns the active client count per recognition week
func (h *DashboardHandler) GetWeeklyClients(w http.ResponseWriter, r *http.Request) {
	series, err := h.Service.GetWeeklyClients(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, series)
}
