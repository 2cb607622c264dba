package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"passport-backend/internal/cache"
	"passport-backend/internal/config"
	"passport-backend/internal/db"
	"passport-backend/internal/handlers"
	"passport-backend/internal/health"
	h "passport-backend/internal/http"
	"passport-backend/internal/middleware"
	"passport-backend/internal/monitoring"
	"passport-backend/internal/repositories"
	"passport-backend/internal/services"
	"passport-backend/internal/storage"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (dashboards recompute on every request)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Initialize health checker
	healthChecker := health.NewChecker(pool)

	// Start monitoring stats server in background
	go monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort).Start()

	// Initialize repositories
	clientRepo := repositories.NewClientRepository(pool)
	serviceRepo := repositories.NewServiceRepository(pool)
	chargeRepo := repositories.NewChargeRepository(pool)
	accountingRepo := repositories.NewAccountingRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	journalRepo := repositories.NewJournalRepository(pool)
	employeeRepo := repositories.NewEmployeeRepository(pool)

	// Initialize services
	clientService := services.NewClientService(clientRepo, chargeRepo, paymentRepo)
	catalogService := services.NewCatalogService(serviceRepo)
	chargeService := services.NewChargeService(chargeRepo, serviceRepo, accountingRepo)
	paymentService := services.NewPaymentService(paymentRepo, chargeRepo)
	dashboardService := services.NewDashboardService(chargeRepo, paymentRepo)
	reportService := services.NewReportService(clientRepo, chargeRepo, paymentRepo, journalRepo, clientService)

	// Report archive (optional, disabled without credentials)
	archive := storage.NewArchive(cfg)

	// Initialize handlers
	clientHandler := handlers.NewClientHandler(clientService)
	serviceHandler := handlers.NewServiceHandler(catalogService)
	chargeHandler := handlers.NewChargeHandler(chargeService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	journalHandler := handlers.NewJournalHandler(journalRepo)
	employeeHandler := handlers.NewEmployeeHandler(employeeRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	reportHandler := handlers.NewReportHandler(reportService, archive)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		clientHandler,
		serviceHandler,
		chargeHandler,
		paymentHandler,
		journalHandler,
		employeeHandler,
		dashboardHandler,
		reportHandler,
		healthHandler,
	)

	// Wrap with panic recovery, metrics and CORS middleware
	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
