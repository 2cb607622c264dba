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

type ClientHandler struct {
	Service *services.ClientService
}

func NewClientHandler(s *services.ClientService) *ClientHandler {
	return &ClientHandler{Service: s}
}

func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	client, err := h.Service.CreateClient(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	client, err := h.Service.GetClient(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Client not found")
		return
	}
	utils.JSON(w, http.StatusOK, client)
}

// ListClients returns the client register with billing totals. The
// optional ?search= parameter filters by name or legal name.
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	clients, err := h.Service.ListClients(r.Context(), search)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	client, err := h.Service.UpdateClient(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, client)
}

func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteClient(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetClientStats returns the per-service blocks of the client detail
// screen: totals, settlement position and the weekly charged/paid
// series.
func (h *ClientHandler) GetClientStats(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	stats, err := h.Service.GetClientStats(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}
