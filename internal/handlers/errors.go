package handlers

import (
	"errors"
	"net/http"

	"passport-backend/internal/services"
	"passport-backend/pkg/utils"
)

// writeServiceError maps a service error onto the HTTP response: input
// problems become 400, everything else is a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrValidation) {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.Error(w, http.StatusInternalServerError, err.Error())
}
