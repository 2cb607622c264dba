package handlers

import (
	"net/http"
	"strconv"

	"passport-backend/internal/models"
	"passport-backend/internal/repositories"
	"passport-backend/internal/timeutil"
	"passport-backend/pkg/utils"
)

// JournalHandler serves the read-only accounting journal. Entries are
// posted by the billing operations and the database routines, never
// through this API.
type JournalHandler struct {
	Repo *repositories.JournalRepository
}

func NewJournalHandler(repo *repositories.JournalRepository) *JournalHandler {
	return &JournalHandler{Repo: repo}
}

// ListEntries filters the journal by ?client_id=, ?account=,
// ?document_type=, ?from= and ?to= (YYYY-MM-DD, inclusive).
func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.JournalFilter{
		Account:      q.Get("account"),
		DocumentType: q.Get("document_type"),
	}

	if v := q.Get("client_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "client_id must be a number")
			return
		}
		filter.ClientID = &id
	}
	if v := q.Get("from"); v != "" {
		day, err := timeutil.ParseDate(v)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
			return
		}
		filter.From = &day
	}
	if v := q.Get("to"); v != "" {
		day, err := timeutil.ParseDate(v)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
			return
		}
		filter.To = &day
	}

	entries, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entries)
}
