package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"passport-backend/internal/models"
	"passport-backend/internal/repositories"
	"passport-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// EmployeeHandler manages the employee directory used for client
// manager assignment.
type EmployeeHandler struct {
	Repo *repositories.EmployeeRepository
}

func NewEmployeeHandler(repo *repositories.EmployeeRepository) *EmployeeHandler {
	return &EmployeeHandler{Repo: repo}
}

func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		utils.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	employee := &models.Employee{Name: req.Name, PositionID: req.PositionID}
	if err := h.Repo.Create(r.Context(), employee); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, employee)
}

func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	employee, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Employee not found")
		return
	}
	utils.JSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Repo.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		utils.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	employee := &models.Employee{ID: id, Name: req.Name, PositionID: req.PositionID}
	if err := h.Repo.Update(r.Context(), employee); err != nil {
		writeServiceError(w, err)
		return
	}

	updated, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, updated)
}

func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *EmployeeHandler) ListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.Repo.ListPositions(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, positions)
}

func (h *EmployeeHandler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		utils.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	position := &models.Position{Name: req.Name}
	if err := h.Repo.CreatePosition(r.Context(), position); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, position)
}
