package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"passport-backend/internal/models"
	"passport-backend/internal/services"
	"passport-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// ServiceHandler exposes the services catalog
type ServiceHandler struct {
	Service *services.CatalogService
}

func NewServiceHandler(s *services.CatalogService) *ServiceHandler {
	return &ServiceHandler{Service: s}
}

func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	service, err := h.Service.CreateService(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, service)
}

func (h *ServiceHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	service, err := h.Service.GetService(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Service not found")
		return
	}
	utils.JSON(w, http.StatusOK, service)
}

func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListServices(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	service, err := h.Service.UpdateService(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, service)
}

func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteService(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
