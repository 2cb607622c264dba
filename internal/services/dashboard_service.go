package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"passport-backend/internal/billing"
	"passport-backend/internal/cache"
	"passport-backend/internal/repositories"
	"passport-backend/internal/timeutil"
)

// DashboardService computes the subscription metrics screens. Results
// are cached under the current data version: any charge or payment write
// bumps the version, so a dashboard never shows numbers older than the
// last mutation.
type DashboardService struct {
	ChargeRepo  *repositories.ChargeRepository
	PaymentRepo *repositories.PaymentRepository
}

func NewDashboardService(chargeRepo *repositories.ChargeRepository, paymentRepo *repositories.PaymentRepository) *DashboardService {
	return &DashboardService{ChargeRepo: chargeRepo, PaymentRepo: paymentRepo}
}

const dashboardTTL = 5 * time.Minute

func (s *DashboardService) GetMetrics(ctx context.Context) (*billing.Metrics, error) {
	key := fmt.Sprintf(cache.MetricsKeyFmt, cache.DataVersion(ctx))
	if data, ok := cache.GetCached(ctx, key); ok {
		var m billing.Metrics
		if err := json.Unmarshal(data, &m); err == nil {
			return &m, nil
		}
	}

	charges, err := s.ChargeRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.PaymentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	m := billing.ComputeMetrics(charges, payments, timeutil.Today())
	if data, err := json.Marshal(m); err == nil {
		cache.SetCached(ctx, key, data, dashboardTTL)
	}
	return &m, nil
}

func (s *DashboardService) GetChurnSeries(ctx context.Context) ([]billing.ChurnMonth, error) {
	key := fmt.Sprintf(cache.ChurnSeriesKeyFmt, cache.DataVersion(ctx))
	if data, ok := cache.GetCached(ctx, key); ok {
		var series []billing.ChurnMonth
		if err := json.Unmarshal(data, &series); err == nil {
			return series, nil
		}
	}

	charges, err := s.ChargeRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	series := billing.ComputeChurnSeries(charges, timeutil.Today())
	if data, err := json.Marshal(series); err == nil {
		cache.SetCached(ctx, key, data, dashboardTTL)
	}
	return series, nil
}

func (s *DashboardService) GetWeeklyClients(ctx context.Context) ([]billing.WeekCount, error) {
	key := fmt.Sprintf(cache.WeeklyClientsKeyFmt, cache.DataVersion(ctx))
	if data, ok := cache.GetCached(ctx, key); ok {
		var series []billing.WeekCount
		if err := json.Unmarshal(data, &series); err == nil {
			return series, nil
		}
	}

	charges, err := s.ChargeRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	series := billing.ComputeWeeklyClients(charges, timeutil.Today())
	if data, err := json.Marshal(series); err == nil {
		cache.SetCached(ctx, key, data, dashboardTTL)
	}
	return series, nil
}
