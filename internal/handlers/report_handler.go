package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"passport-backend/internal/billing"
	"passport-backend/internal/services"
	"passport-backend/internal/storage"
	"passport-backend/internal/timeutil"
	"passport-backend/pkg/utils"
)

// ReportHandler serves the accounting reports and register exports.
// Generated files go to the response and, when the archive is
// configured, to the report bucket as well.
type ReportHandler struct {
	Service *services.ReportService
	Archive *storage.Archive
}

func NewReportHandler(s *services.ReportService, archive *storage.Archive) *ReportHandler {
	return &ReportHandler{Service: s, Archive: archive}
}

func reportPeriod(r *http.Request) (from, to time.Time, err error) {
	q := r.URL.Query()
	from, err = timeutil.ParseDate(q.Get("from"))
	if err != nil {
		return from, to, fmt.Errorf("from must be YYYY-MM-DD")
	}
	to, err = timeutil.ParseDate(q.Get("to"))
	if err != nil {
		return from, to, fmt.Errorf("to must be YYYY-MM-DD")
	}
	if from.After(to) {
		return from, to, fmt.Errorf("from must not be after to")
	}
	return from, to, nil
}

// AccountCard serves the account 62 card grouped by client
// (?group_by=client, default) or by service (?group_by=service).
// ?format=pdf downloads the rendered table instead of JSON.
func (h *ReportHandler) AccountCard(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportPeriod(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var card *billing.AccountCard
	if r.URL.Query().Get("group_by") == "service" {
		card, err = h.Service.Account62ByService(r.Context(), from, to)
	} else {
		card, err = h.Service.Account62ByClient(r.Context(), from, to)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "pdf" {
		data, err := h.Service.GenerateCardPDF(card, from, to)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		name := fmt.Sprintf("card62_%s_%s.pdf", from.Format(timeutil.DateLayout), to.Format(timeutil.DateLayout))
		h.Archive.Store(r.Context(), name, "application/pdf", data)
		sendFile(w, name, "application/pdf", data)
		return
	}
	utils.JSON(w, http.StatusOK, card)
}

// TurnoverSheet serves the оборотно-сальдовая ведомость for the period
func (h *ReportHandler) TurnoverSheet(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportPeriod(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sheet, err := h.Service.TurnoverSheet(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "pdf" {
		data, err := h.Service.GenerateTurnoverPDF(sheet, from, to)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		name := fmt.Sprintf("turnover_%s_%s.pdf", from.Format(timeutil.DateLayout), to.Format(timeutil.DateLayout))
		h.Archive.Store(r.Context(), name, "application/pdf", data)
		sendFile(w, name, "application/pdf", data)
		return
	}
	utils.JSON(w, http.StatusOK, sheet)
}

// DebtReport serves the two-sided debt positions report. ?format=pdf
// downloads the rendered tables.
func (h *ReportHandler) DebtReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.BuildDebtReport(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "pdf" {
		data, err := h.Service.GenerateDebtPDF(report)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		name := fmt.Sprintf("debt_%s.pdf", timeutil.Now().Format(timeutil.DateLayout))
		h.Archive.Store(r.Context(), name, "application/pdf", data)
		sendFile(w, name, "application/pdf", data)
		return
	}
	utils.JSON(w, http.StatusOK, report)
}

// ExportClients downloads the client register, ?format=xlsx for a
// workbook, CSV otherwise.
func (h *ReportHandler) ExportClients(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "xlsx" {
		data, err := h.Service.GenerateClientsXLSX(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		name := fmt.Sprintf("клиенты_%s.xlsx", timeutil.Now().Format(timeutil.DateLayout))
		h.Archive.Store(r.Context(), name, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
		sendFile(w, name, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
		return
	}

	data, err := h.Service.GenerateClientsCSV(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	name := services.ClientsCSVFilename()
	h.Archive.Store(r.Context(), name, "text/csv; charset=utf-8", data)
	sendFile(w, name, "text/csv; charset=utf-8", data)
}

func sendFile(w http.ResponseWriter, name, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	// RFC 5987 encoding keeps the Cyrillic filenames intact
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(name)))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
