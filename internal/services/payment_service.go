package services

import (
	"context"

	"passport-backend/internal/cache"
	"passport-backend/internal/models"
	"passport-backend/internal/repositories"
	"passport-backend/internal/timeutil"
)

type PaymentService struct {
	Repo       *repositories.PaymentRepository
	ChargeRepo *repositories.ChargeRepository
}

func NewPaymentService(repo *repositories.PaymentRepository, chargeRepo *repositories.ChargeRepository) *PaymentService {
	return &PaymentService{Repo: repo, ChargeRepo: chargeRepo}
}

func (s *PaymentService) ListPayments(ctx context.Context, clientID int) ([]*models.Payment, error) {
	return s.Repo.ListByClient(ctx, clientID)
}

// CreatePayment records a payment against a charge. The service fields
// are denormalized from the linked charge so journal grouping by service
// name keeps working even if the charge is edited later.
func (s *PaymentService) CreatePayment(ctx context.Context, clientID int, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if req.ChargeID <= 0 {
		return nil, validationf("charge_id is required")
	}
	if req.Amount <= 0 {
		return nil, validationf("amount must be positive")
	}
	if req.PaymentDate == "" {
		return nil, validationf("payment_date is required")
	}
	day, err := timeutil.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, validationf("payment_date must be YYYY-MM-DD")
	}

	charge, err := s.ChargeRepo.Get(ctx, req.ChargeID)
	if err != nil {
		return nil, validationf("unknown charge")
	}
	if charge.ClientID != clientID {
		return nil, validationf("charge belongs to another client")
	}

	payment := &models.Payment{
		ClientID:    clientID,
		ChargeID:    &charge.ID,
		ServiceID:   charge.ServiceID,
		ServiceName: charge.ServiceName,
		Amount:      req.Amount,
		PaymentDate: day,
		Comment:     req.Comment,
	}
	if err := s.Repo.Create(ctx, payment); err != nil {
		return nil, err
	}
	cache.BumpDataVersion(ctx)
	return payment, nil
}

func (s *PaymentService) UpdatePayment(ctx context.Context, id int, req *models.UpdatePaymentRequest) (*models.Payment, error) {
	payment, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, validationf("amount must be positive")
	}
	day, err := timeutil.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, validationf("payment_date must be YYYY-MM-DD")
	}

	payment.Amount = req.Amount
	payment.PaymentDate = day
	payment.Comment = req.Comment
	if err := s.Repo.Update(ctx, payment); err != nil {
		return nil, err
	}
	cache.BumpDataVersion(ctx)
	return payment, nil
}

func (s *PaymentService) DeletePayment(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.BumpDataVersion(ctx)
	return nil
}
