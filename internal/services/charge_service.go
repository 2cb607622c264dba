package services

import (
	"context"
	"sort"
	"time"

	"passport-backend/internal/billing"
	"passport-backend/internal/cache"
	"passport-backend/internal/models"
	"passport-backend/internal/repositories"
	"passport-backend/internal/timeutil"
)

type ChargeService struct {
	Repo           *repositories.ChargeRepository
	ServiceRepo    *repositories.ServiceRepository
	AccountingRepo *repositories.AccountingRepository
}

func NewChargeService(
	repo *repositories.ChargeRepository,
	serviceRepo *repositories.ServiceRepository,
	accountingRepo *repositories.AccountingRepository,
) *ChargeService {
	return &ChargeService{Repo: repo, ServiceRepo: serviceRepo, AccountingRepo: accountingRepo}
}

// ListCharges returns a client's charges with display statuses, running
// contracts first.
func (s *ChargeService) ListCharges(ctx context.Context, clientID int) ([]*models.ChargeView, error) {
	charges, err := s.Repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	today := timeutil.Today()

	views := make([]*models.ChargeView, 0, len(charges))
	for _, c := range charges {
		views = append(views, &models.ChargeView{Charge: *c, DisplayStatus: billing.DisplayStatus(c, today)})
	}
	sort.SliceStable(views, func(i, j int) bool {
		ri, rj := billing.StatusRank(views[i].DisplayStatus), billing.StatusRank(views[j].DisplayStatus)
		if ri != rj {
			return ri < rj
		}
		return views[i].Charge.CreatedAt.After(views[j].Charge.CreatedAt)
	})
	return views, nil
}

func (s *ChargeService) GetCharge(ctx context.Context, id int) (*models.Charge, error) {
	return s.Repo.Get(ctx, id)
}

func parseChargeDates(startStr, endStr string, amount float64) (start, end time.Time, err error) {
	if startStr == "" || endStr == "" {
		return start, end, validationf("start_date and end_date are required")
	}
	if amount <= 0 {
		return start, end, validationf("amount must be positive")
	}
	start, err = timeutil.ParseDate(startStr)
	if err != nil {
		return start, end, validationf("start_date must be YYYY-MM-DD")
	}
	end, err = timeutil.ParseDate(endStr)
	if err != nil {
		return start, end, validationf("end_date must be YYYY-MM-DD")
	}
	if start.After(end) {
		return start, end, validationf("start_date must not be after end_date")
	}
	return start, end, nil
}

// checkOverlap rejects a subscription period that intersects an existing
// non-cancelled period of the same service. The intervals are treated as
// open at the boundaries, so a renewal starting on or after the previous
// period's end day passes.
func checkOverlap(existing []*models.Charge, serviceName string, excludeID int, start, end time.Time) error {
	for _, c := range existing {
		if c.ID == excludeID || c.ServiceName != serviceName {
			continue
		}
		if c.Status != nil && *c.Status == models.ChargeStatusCancelled {
			continue
		}
		terms := billing.TermsFromCharge(c)
		if start.Before(terms.End) && end.After(terms.Start) {
			return validationf("period overlaps an existing %q charge (%s — %s)",
				serviceName, terms.Start.Format(timeutil.DateLayout), terms.End.Format(timeutil.DateLayout))
		}
	}
	return nil
}

// inferSubscriptionType classifies a new charge: one-time services keep
// their own type, a repeat of an existing non-cancelled service is a
// renewal, everything else opens a primary subscription.
func inferSubscriptionType(service *models.Service, existing []*models.Charge) string {
	if service.Type == models.ServiceTypeOneTime {
		return models.SubscriptionOneTime
	}
	for _, c := range existing {
		if c.ServiceName != service.Name {
			continue
		}
		if c.Status != nil && *c.Status == models.ChargeStatusCancelled {
			continue
		}
		return models.SubscriptionRenewal
	}
	return models.SubscriptionPrimary
}

func (s *ChargeService) CreateCharge(ctx context.Context, clientID int, req *models.CreateChargeRequest) (*models.Charge, error) {
	if req.ServiceID <= 0 {
		return nil, validationf("service_id is required")
	}
	service, err := s.ServiceRepo.Get(ctx, req.ServiceID)
	if err != nil {
		return nil, validationf("unknown service")
	}
	start, end, err := parseChargeDates(req.StartDate, req.EndDate, req.Amount)
	if err != nil {
		return nil, err
	}

	existing, err := s.Repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if service.Type == models.ServiceTypeSubscription {
		if err := checkOverlap(existing, service.Name, 0, start, end); err != nil {
			return nil, err
		}
	}
	subType := inferSubscriptionType(service, existing)

	charge := &models.Charge{
		ClientID:         clientID,
		ServiceID:        &service.ID,
		ServiceName:      service.Name,
		StartDate:        &start,
		EndDate:          &end,
		Amount:           req.Amount,
		Comment:          req.Comment,
		SubscriptionType: &subType,
	}
	if err := s.Repo.Create(ctx, charge); err != nil {
		return nil, err
	}
	cache.BumpDataVersion(ctx)
	return charge, nil
}

func (s *ChargeService) UpdateCharge(ctx context.Context, id int, req *models.UpdateChargeRequest) (*models.Charge, error) {
	charge, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ServiceID <= 0 {
		return nil, validationf("service_id is required")
	}
	service, err := s.ServiceRepo.Get(ctx, req.ServiceID)
	if err != nil {
		return nil, validationf("unknown service")
	}
	start, end, err := parseChargeDates(req.StartDate, req.EndDate, req.Amount)
	if err != nil {
		return nil, err
	}

	if service.Type == models.ServiceTypeSubscription {
		existing, err := s.Repo.ListByClient(ctx, charge.ClientID)
		if err != nil {
			return nil, err
		}
		if err := checkOverlap(existing, service.Name, id, start, end); err != nil {
			return nil, err
		}
	}

	charge.ServiceID = &service.ID
	charge.ServiceName = service.Name
	charge.StartDate = &start
	charge.EndDate = &end
	charge.Amount = req.Amount
	charge.Comment = req.Comment
	if err := s.Repo.Update(ctx, charge); err != nil {
		return nil, err
	}
	cache.BumpDataVersion(ctx)
	return s.Repo.Get(ctx, id)
}

func (s *ChargeService) DeleteCharge(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.BumpDataVersion(ctx)
	return nil
}

// RenewalDefaults prefills the follow-up period of a charge: it starts
// the day after the latest non-cancelled period of the service ends and
// runs for the catalog duration.
func (s *ChargeService) RenewalDefaults(ctx context.Context, chargeID int) (*models.RenewalDefaults, error) {
	charge, err := s.Repo.Get(ctx, chargeID)
	if err != nil {
		return nil, err
	}
	existing, err := s.Repo.ListByClient(ctx, charge.ClientID)
	if err != nil {
		return nil, err
	}

	var latestEnd *time.Time
	for _, c := range existing {
		if c.ServiceName != charge.ServiceName || c.EndDate == nil {
			continue
		}
		if c.Status != nil && *c.Status == models.ChargeStatusCancelled {
			continue
		}
		if latestEnd == nil || c.EndDate.After(*latestEnd) {
			latestEnd = c.EndDate
		}
	}
	if latestEnd == nil {
		return nil, validationf("no completed period to renew from")
	}

	duration := 30
	serviceID := 0
	if charge.ServiceID != nil {
		serviceID = *charge.ServiceID
		if service, err := s.ServiceRepo.Get(ctx, serviceID); err == nil && service.DurationDays != nil {
			duration = *service.DurationDays
		}
	}
	start := latestEnd.AddDate(0, 0, 1)
	end := start.AddDate(0, 0, duration)

	return &models.RenewalDefaults{
		ServiceID:        serviceID,
		ServiceName:      charge.ServiceName,
		StartDate:        start.Format(timeutil.DateLayout),
		EndDate:          end.Format(timeutil.DateLayout),
		Amount:           charge.Amount,
		SubscriptionType: models.SubscriptionRenewal,
	}, nil
}

// PreviewCancel shows the pro-rata earned/unearned split a cancellation
// would post, without calling the accounting routine.
func (s *ChargeService) PreviewCancel(ctx context.Context, chargeID int, dateStr string) (*models.CancelPreview, error) {
	charge, cancelDate, err := s.chargeAndDate(ctx, chargeID, dateStr)
	if err != nil {
		return nil, err
	}
	terms := billing.TermsFromCharge(charge)
	if cancelDate.After(terms.End) {
		return nil, validationf("cancel date must not be after the charge end date")
	}
	preview := billing.ProRataCancel(charge.Amount, terms.Start, terms.End, cancelDate)
	return &preview, nil
}

func (s *ChargeService) PauseCharge(ctx context.Context, chargeID int, dateStr string) error {
	charge, pauseDate, err := s.chargeAndDate(ctx, chargeID, dateStr)
	if err != nil {
		return err
	}
	terms := billing.TermsFromCharge(charge)
	if pauseDate.Before(terms.Start) || pauseDate.After(terms.End) {
		return validationf("pause date must fall within the charge period")
	}
	if charge.Status != nil && *charge.Status == models.ChargeStatusPaused {
		return validationf("charge is already paused")
	}
	if err := s.AccountingRepo.PauseCharge(ctx, chargeID, pauseDate); err != nil {
		return err
	}
	cache.BumpDataVersion(ctx)
	return nil
}

func (s *ChargeService) ResumeCharge(ctx context.Context, chargeID int, dateStr string) error {
	charge, resumeDate, err := s.chargeAndDate(ctx, chargeID, dateStr)
	if err != nil {
		return err
	}
	if charge.Status == nil || *charge.Status != models.ChargeStatusPaused {
		return validationf("charge is not paused")
	}
	if charge.FreezeStart != nil && resumeDate.Before(*charge.FreezeStart) {
		return validationf("resume date must not precede the pause date")
	}
	if err := s.AccountingRepo.ResumeCharge(ctx, chargeID, resumeDate); err != nil {
		return err
	}
	cache.BumpDataVersion(ctx)
	return nil
}

func (s *ChargeService) CancelCharge(ctx context.Context, chargeID int, dateStr string) error {
	charge, cancelDate, err := s.chargeAndDate(ctx, chargeID, dateStr)
	if err != nil {
		return err
	}
	terms := billing.TermsFromCharge(charge)
	if cancelDate.After(terms.End) {
		return validationf("cancel date must not be after the charge end date")
	}
	if charge.Status != nil && *charge.Status == models.ChargeStatusCancelled {
		return validationf("charge is already cancelled")
	}
	if err := s.AccountingRepo.CancelCharge(ctx, chargeID, cancelDate); err != nil {
		return err
	}
	cache.BumpDataVersion(ctx)
	return nil
}

func (s *ChargeService) chargeAndDate(ctx context.Context, chargeID int, dateStr string) (*models.Charge, time.Time, error) {
	charge, err := s.Repo.Get(ctx, chargeID)
	if err != nil {
		return nil, time.Time{}, err
	}
	if dateStr == "" {
		return nil, time.Time{}, validationf("date is required")
	}
	day, err := timeutil.ParseDate(dateStr)
	if err != nil {
		return nil, time.Time{}, validationf("date must be YYYY-MM-DD")
	}
	return charge, day, nil
}
