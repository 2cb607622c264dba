package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"passport-backend/internal/billing"
	"passport-backend/internal/models"
	"passport-backend/internal/repositories"
	"passport-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/xuri/excelize/v2"
)

// ReportService builds the accounting reports: the account 62 card, the
// turnover sheet, the debt positions report and the client register
// exports (CSV, XLSX, PDF).
type ReportService struct {
	ClientRepo  *repositories.ClientRepository
	ChargeRepo  *repositories.ChargeRepository
	PaymentRepo *repositories.PaymentRepository
	JournalRepo *repositories.JournalRepository
	Clients     *ClientService
}

func NewReportService(
	clientRepo *repositories.ClientRepository,
	chargeRepo *repositories.ChargeRepository,
	paymentRepo *repositories.PaymentRepository,
	journalRepo *repositories.JournalRepository,
	clients *ClientService,
) *ReportService {
	return &ReportService{
		ClientRepo:  clientRepo,
		ChargeRepo:  chargeRepo,
		PaymentRepo: paymentRepo,
		JournalRepo: journalRepo,
		Clients:     clients,
	}
}

// Account62ByClient builds the receivables card grouped by client name
func (s *ReportService) Account62ByClient(ctx context.Context, from, to time.Time) (*billing.AccountCard, error) {
	entries, err := s.JournalRepo.ListByAccount(ctx, billing.AccountReceivables)
	if err != nil {
		return nil, err
	}
	names, err := s.clientNames(ctx)
	if err != nil {
		return nil, err
	}
	card := billing.BuildAccountCard(entries, billing.AccountReceivables, func(e *models.JournalEntry) string {
		if e.ClientID == nil {
			return "—"
		}
		if name, ok := names[*e.ClientID]; ok {
			return name
		}
		return fmt.Sprintf("клиент #%d", *e.ClientID)
	}, from, to)
	return &card, nil
}

// Account62ByService builds the receivables card grouped by service name
func (s *ReportService) Account62ByService(ctx context.Context, from, to time.Time) (*billing.AccountCard, error) {
	entries, err := s.JournalRepo.ListByAccount(ctx, billing.AccountReceivables)
	if err != nil {
		return nil, err
	}
	card := billing.BuildAccountCard(entries, billing.AccountReceivables, serviceKey, from, to)
	return &card, nil
}

// TurnoverSheet builds the оборотно-сальдовая ведомость per service
func (s *ReportService) TurnoverSheet(ctx context.Context, from, to time.Time) (*billing.TurnoverSheet, error) {
	entries, err := s.JournalRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sheet := billing.BuildTurnoverSheet(entries, serviceKey, from, to)
	return &sheet, nil
}

func serviceKey(e *models.JournalEntry) string {
	if e.ServiceName == nil || *e.ServiceName == "" {
		return "—"
	}
	return *e.ServiceName
}

func (s *ReportService) clientNames(ctx context.Context) (map[int]string, error) {
	clients, err := s.ClientRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	return names, nil
}

// DebtPosition is one row of the debt report
type DebtPosition struct {
	ClientID   int     `json:"client_id"`
	ClientName string  `json:"client_name"`
	Weeks      int     `json:"weeks"`
	Amount     float64 `json:"amount"`
}

// DebtReport splits clients into the two sides of the settlement:
// «Кто нам должен» and «Кому мы должны»
type DebtReport struct {
	ClientsOwe  []DebtPosition `json:"clients_owe"`
	CompanyOwes []DebtPosition `json:"company_owes"`
}

// BuildDebtReport computes every client's settlement position from week
// allocations and sorts them onto the owing side they fall on. Clients
// with a zero position are left out.
func (s *ReportService) BuildDebtReport(ctx context.Context) (*DebtReport, error) {
	charges, err := s.ChargeRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.PaymentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.clientNames(ctx)
	if err != nil {
		return nil, err
	}

	type agg struct {
		charged, paid   float64
		weeks, rendered int
	}
	today := timeutil.Today()
	byClient := make(map[int]*agg)
	get := func(id int) *agg {
		if a, ok := byClient[id]; ok {
			return a
		}
		a := &agg{}
		byClient[id] = a
		return a
	}
	for _, c := range charges {
		a := get(c.ClientID)
		alloc := billing.Allocate(billing.TermsFromCharge(c), today)
		a.charged += c.Amount
		a.weeks += alloc.WeeksInContract
		a.rendered += alloc.WeeksRendered
	}
	for _, p := range payments {
		get(p.ClientID).paid += p.Amount
	}

	report := &DebtReport{}
	for clientID, a := range byClient {
		pos := billing.ComputePosition(a.charged, a.paid, a.weeks, a.rendered)
		row := DebtPosition{ClientID: clientID, ClientName: names[clientID], Weeks: pos.DebtWeeks}
		switch {
		case pos.ClientOwes > 0:
			row.Amount = pos.ClientOwes
			report.ClientsOwe = append(report.ClientsOwe, row)
		case pos.CompanyOwes > 0:
			row.Amount = pos.CompanyOwes
			report.CompanyOwes = append(report.CompanyOwes, row)
		}
	}
	sortPositions(report.ClientsOwe)
	sortPositions(report.CompanyOwes)
	return report, nil
}

// sortPositions orders a debt list largest amount first
func sortPositions(rows []DebtPosition) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Amount > rows[j].Amount })
}

var clientsCSVHeader = []string{"Название", "Начислено", "Оплачено", "Начало", "Завершение", "Менеджер"}

// BuildClientsCSV renders the client register the way spreadsheets in a
// ru-RU locale expect it: semicolon-separated, UTF-8 BOM up front.
func BuildClientsCSV(rows []*models.ClientSummary) []byte {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	w.Comma = ';'
	w.Write(clientsCSVHeader)
	for _, row := range rows {
		w.Write(clientCSVRow(row))
	}
	w.Flush()
	return buf.Bytes()
}

func clientCSVRow(row *models.ClientSummary) []string {
	manager := ""
	if row.Manager != nil {
		manager = row.Manager.Name
	}
	start, end := "", ""
	if row.FirstStart != nil {
		start = row.FirstStart.Format(timeutil.DateLayout)
	}
	if row.LastEnd != nil {
		end = row.LastEnd.Format(timeutil.DateLayout)
	}
	return []string{
		row.Name,
		strconv.FormatFloat(row.TotalCharged, 'f', 2, 64),
		strconv.FormatFloat(row.TotalPaid, 'f', 2, 64),
		start,
		end,
		manager,
	}
}

// ClientsCSVFilename names the export after the day it was taken
func ClientsCSVFilename() string {
	return fmt.Sprintf("клиенты_%s.csv", timeutil.Now().Format(timeutil.DateLayout))
}

// GenerateClientsCSV exports the client register as CSV
func (s *ReportService) GenerateClientsCSV(ctx context.Context) ([]byte, error) {
	rows, err := s.Clients.ListClients(ctx, "")
	if err != nil {
		return nil, err
	}
	return BuildClientsCSV(rows), nil
}

// GenerateClientsXLSX exports the client register as a workbook
func (s *ReportService) GenerateClientsXLSX(ctx context.Context) ([]byte, error) {
	rows, err := s.Clients.ListClients(ctx, "")
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Клиенты"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range clientsCSVHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i, row := range rows {
		values := clientCSVRow(row)
		record := []any{values[0], row.TotalCharged, row.TotalPaid, values[3], values[4], values[5]}
		for col, v := range record {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateCardPDF renders an account card as a one-page table
func (s *ReportService) GenerateCardPDF(card *billing.AccountCard, from, to time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")

	pdf.SetFont("Arial", "B", 14)
	title := fmt.Sprintf("Карточка счёта %s «%s»", card.Account, billing.AccountName(card.Account))
	pdf.CellFormat(190, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	period := fmt.Sprintf("Период: %s — %s", from.Format(timeutil.DisplayLayout), to.Format(timeutil.DisplayLayout))
	pdf.CellFormat(190, 6, tr(period), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(70, 7, tr("Группа"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, tr("Нач. остаток"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, tr("Начислено"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, tr("Оплачено"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, tr("Кон. остаток"), "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, row := range card.Rows {
		key := row.Key
		if len(key) > 40 {
			key = key[:37] + "..."
		}
		pdf.CellFormat(70, 6, tr(key), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.Opening), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.Charged), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.Paid), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.Closing), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(70, 7, tr("Итого"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", card.Total.Opening), "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", card.Total.Charged), "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", card.Total.Paid), "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", card.Total.Closing), "1", 1, "R", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateTurnoverPDF renders the turnover sheet, one table per group
// plus the totals table.
func (s *ReportService) GenerateTurnoverPDF(sheet *billing.TurnoverSheet, from, to time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 10, tr("Оборотно-сальдовая ведомость"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	period := fmt.Sprintf("Период: %s — %s", from.Format(timeutil.DisplayLayout), to.Format(timeutil.DisplayLayout))
	pdf.CellFormat(190, 6, tr(period), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeLines := func(title string, lines []billing.TurnoverLine) {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 7, tr(title), "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(20, 7, tr("Счёт"), "1", 0, "C", true, 0, "")
		pdf.CellFormat(80, 7, tr("Наименование"), "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, tr("Дебет"), "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, tr("Кредит"), "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, tr("Остаток"), "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, line := range lines {
			pdf.CellFormat(20, 6, line.Account, "1", 0, "C", false, 0, "")
			pdf.CellFormat(80, 6, tr(line.Name), "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", line.Debit), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", line.Credit), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", line.Closing), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	for _, group := range sheet.Groups {
		writeLines(group.Key, group.Lines)
	}
	writeLines("Итого", sheet.Totals)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateDebtPDF renders the debt report as two tables
func (s *ReportService) GenerateDebtPDF(report *DebtReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 10, tr("Отчёт по задолженностям"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, tr(fmt.Sprintf("Сформирован: %s", timeutil.Now().Format(timeutil.DisplayLayout))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeSection := func(title string, rows []DebtPosition) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, tr(title), "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(110, 7, tr("Клиент"), "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, tr("Недель"), "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, tr("Сумма"), "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		var total float64
		for _, row := range rows {
			pdf.CellFormat(110, 6, tr(row.ClientName), "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%d", row.Weeks), "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", row.Amount), "1", 1, "R", false, 0, "")
			total += row.Amount
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(150, 7, tr("Итого"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", total), "1", 1, "R", false, 0, "")
		pdf.Ln(5)
	}

	writeSection("Кто нам должен", report.ClientsOwe)
	writeSection("Кому мы должны", report.CompanyOwes)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
