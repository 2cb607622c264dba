package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"passport-backend/internal/handlers"
)

func NewRouter(
	clientHandler *handlers.ClientHandler,
	serviceHandler *handlers.ServiceHandler,
	chargeHandler *handlers.ChargeHandler,
	paymentHandler *handlers.PaymentHandler,
	journalHandler *handlers.JournalHandler,
	employeeHandler *handlers.EmployeeHandler,
	dashboardHandler *handlers.DashboardHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Clients and their nested billing resources
	clientsAPI := r.PathPrefix("/api/clients").Subrouter()
	clientsAPI.HandleFunc("", clientHandler.ListClients).Methods("GET")
	clientsAPI.HandleFunc("", clientHandler.CreateClient).Methods("POST")
	clientsAPI.HandleFunc("/{id}", clientHandler.GetClient).Methods("GET")
	clientsAPI.HandleFunc("/{id}", clientHandler.UpdateClient).Methods("PUT")
	clientsAPI.HandleFunc("/{id}", clientHandler.DeleteClient).Methods("DELETE")
	clientsAPI.HandleFunc("/{id}/stats", clientHandler.GetClientStats).Methods("GET")
	clientsAPI.HandleFunc("/{id}/charges", chargeHandler.ListCharges).Methods("GET")
	clientsAPI.HandleFunc("/{id}/charges", chargeHandler.CreateCharge).Methods("POST")
	clientsAPI.HandleFunc("/{id}/payments", paymentHandler.ListPayments).Methods("GET")
	clientsAPI.HandleFunc("/{id}/payments", paymentHandler.CreatePayment).Methods("POST")

	// Services catalog
	servicesAPI := r.PathPrefix("/api/services").Subrouter()
	servicesAPI.HandleFunc("", serviceHandler.ListServices).Methods("GET")
	servicesAPI.HandleFunc("", serviceHandler.CreateService).Methods("POST")
	servicesAPI.HandleFunc("/{id}", serviceHandler.GetService).Methods("GET")
	servicesAPI.HandleFunc("/{id}", serviceHandler.UpdateService).Methods("PUT")
	servicesAPI.HandleFunc("/{id}", serviceHandler.DeleteService).Methods("DELETE")

	// Charges: edits plus the accounting lifecycle operations
	chargesAPI := r.PathPrefix("/api/charges").Subrouter()
	chargesAPI.HandleFunc("/{id}", chargeHandler.GetCharge).Methods("GET")
	chargesAPI.HandleFunc("/{id}", chargeHandler.UpdateCharge).Methods("PUT")
	chargesAPI.HandleFunc("/{id}", chargeHandler.DeleteCharge).Methods("DELETE")
	chargesAPI.HandleFunc("/{id}/pause", chargeHandler.PauseCharge).Methods("POST")
	chargesAPI.HandleFunc("/{id}/resume", chargeHandler.ResumeCharge).Methods("POST")
	chargesAPI.HandleFunc("/{id}/cancel", chargeHandler.CancelCharge).Methods("POST")
	chargesAPI.HandleFunc("/{id}/cancel-preview", chargeHandler.PreviewCancel).Methods("GET")
	chargesAPI.HandleFunc("/{id}/renewal", chargeHandler.RenewalDefaults).Methods("GET")

	// Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.HandleFunc("/{id}", paymentHandler.UpdatePayment).Methods("PUT")
	paymentsAPI.HandleFunc("/{id}", paymentHandler.DeletePayment).Methods("DELETE")

	// Accounting journal (read-only)
	r.HandleFunc("/api/journal", journalHandler.ListEntries).Methods("GET")

	// Employee directory
	employeesAPI := r.PathPrefix("/api/employees").Subrouter()
	employeesAPI.HandleFunc("", employeeHandler.ListEmployees).Methods("GET")
	employeesAPI.HandleFunc("", employeeHandler.CreateEmployee).Methods("POST")
	employeesAPI.HandleFunc("/{id}", employeeHandler.GetEmployee).Methods("GET")
	employeesAPI.HandleFunc("/{id}", employeeHandler.UpdateEmployee).Methods("PUT")
	employeesAPI.HandleFunc("/{id}", employeeHandler.DeleteEmployee).Methods("DELETE")

	positionsAPI := r.PathPrefix("/api/positions").Subrouter()
	positionsAPI.HandleFunc("", employeeHandler.ListPositions).Methods("GET")
	positionsAPI.HandleFunc("", employeeHandler.CreatePosition).Methods("POST")

	// Dashboards
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.HandleFunc("/metrics", dashboardHandler.GetMetrics).Methods("GET")
	dashboardAPI.HandleFunc("/churn", dashboardHandler.GetChurnSeries).Methods("GET")
	dashboardAPI.HandleFunc("/weekly-clients", dashboardHandler.GetWeeklyClients).Methods("GET")

	// Reports and exports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.HandleFunc("/account-card", reportHandler.AccountCard).Methods("GET")
	reportsAPI.HandleFunc("/turnover", reportHandler.TurnoverSheet).Methods("GET")
	reportsAPI.HandleFunc("/debt", reportHandler.DebtReport).Methods("GET")
	reportsAPI.HandleFunc("/clients-export", reportHandler.ExportClients).Methods("GET")

	// Health endpoints
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	return r
}
