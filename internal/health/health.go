// Package health reports whether the billing database behind the API
// is reachable, for readiness probes and the monitoring dashboard.
package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dbPingTimeout = 2 * time.Second

type Checker struct {
	db *pgxpool.Pool
}

type Status struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewChecker(db *pgxpool.Pool) *Checker {
	return &Checker{db: db}
}

// Check pings the database and rolls the result up into an overall
// status. The request context bounds the ping alongside dbPingTimeout.
func (c *Checker) Check(ctx context.Context) Status {
	dbHealth := c.checkDatabase(ctx)

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return Status{
		Status:   status,
		Database: dbHealth,
	}
}

func (c *Checker) checkDatabase(ctx context.Context) DatabaseHealth {
	ctx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()

	start := time.Now()
	err := c.db.Ping(ctx)
	elapsed := time.Since(start).Milliseconds()

	status := "healthy"
	if err != nil {
		status = "unhealthy"
	}
	return DatabaseHealth{
		Status:       status,
		ResponseTime: elapsed,
	}
}
