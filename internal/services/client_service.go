package services

import (
	"context"
	"sort"
	"time"

	"passport-backend/internal/billing"
	"passport-backend/internal/models"
	"passport-backend/internal/repositories"
	"passport-backend/internal/timeutil"
)

type ClientService struct {
	Repo        *repositories.ClientRepository
	ChargeRepo  *repositories.ChargeRepository
	PaymentRepo *repositories.PaymentRepository
}

func NewClientService(
	repo *repositories.ClientRepository,
	chargeRepo *repositories.ChargeRepository,
	paymentRepo *repositories.PaymentRepository,
) *ClientService {
	return &ClientService{Repo: repo, ChargeRepo: chargeRepo, PaymentRepo: paymentRepo}
}

func (s *ClientService) CreateClient(ctx context.Context, req *models.CreateClientRequest) (*models.Client, error) {
	if req.Name == "" {
		return nil, validationf("name is required")
	}

	client := &models.Client{
		Name:      req.Name,
		LegalName: req.LegalName,
		ManagerID: req.ManagerID,
	}
	if err := s.Repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, client.ID)
}

func (s *ClientService) GetClient(ctx context.Context, id int) (*models.Client, error) {
	return s.Repo.Get(ctx, id)
}

// ListClients returns clients with billing totals and the overall
// service period attached, the way the client register screen shows
// them.
func (s *ClientService) ListClients(ctx context.Context, search string) ([]*models.ClientSummary, error) {
	clients, err := s.Repo.List(ctx, search)
	if err != nil {
		return nil, err
	}
	charges, err := s.ChargeRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.PaymentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	type totals struct {
		charged, paid float64
		first, last   *time.Time
	}
	byClient := make(map[int]*totals)
	get := func(id int) *totals {
		if t, ok := byClient[id]; ok {
			return t
		}
		t := &totals{}
		byClient[id] = t
		return t
	}
	for _, c := range charges {
		t := get(c.ClientID)
		t.charged += c.Amount
		terms := billing.TermsFromCharge(c)
		start, end := terms.Start, terms.End
		if t.first == nil || start.Before(*t.first) {
			t.first = &start
		}
		if t.last == nil || end.After(*t.last) {
			t.last = &end
		}
	}
	for _, p := range payments {
		get(p.ClientID).paid += p.Amount
	}

	summaries := make([]*models.ClientSummary, 0, len(clients))
	for _, client := range clients {
		row := &models.ClientSummary{Client: *client}
		if t, ok := byClient[client.ID]; ok {
			row.TotalCharged = t.charged
			row.TotalPaid = t.paid
			row.FirstStart = t.first
			row.LastEnd = t.last
		}
		summaries = append(summaries, row)
	}
	return summaries, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, id int, req *models.UpdateClientRequest) (*models.Client, error) {
	if req.Name == "" {
		return nil, validationf("name is required")
	}

	client := &models.Client{
		ID:        id,
		Name:      req.Name,
		LegalName: req.LegalName,
		ManagerID: req.ManagerID,
	}
	if err := s.Repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *ClientService) DeleteClient(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

// ServiceStats is one service block of the client detail screen
type ServiceStats struct {
	ServiceName     string             `json:"service_name"`
	TotalCharged    float64            `json:"total_charged"`
	TotalPaid       float64            `json:"total_paid"`
	WeeksInContract int                `json:"weeks_in_contract"`
	WeeksRendered   int                `json:"weeks_rendered"`
	RenderedAmount  float64            `json:"rendered_amount"`
	Position        billing.Position   `json:"position"`
	Weeks           []WeekSlice        `json:"weeks"`
}

// WeekSlice is one recognition week of a service: charged vs paid
type WeekSlice struct {
	Week    string  `json:"week"`
	Charged float64 `json:"charged"`
	Paid    float64 `json:"paid"`
}

// GetClientStats aggregates a client's charges and payments per service:
// totals, week counts, settlement position and the charged/paid weekly
// series. Payments fill weeks oldest-first.
func (s *ClientService) GetClientStats(ctx context.Context, clientID int) ([]*ServiceStats, error) {
	charges, err := s.ChargeRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	payments, err := s.PaymentRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	today := timeutil.Today()
	byService := make(map[string]*ServiceStats)
	charged := make(map[string]map[string]float64)

	for _, c := range charges {
		st, ok := byService[c.ServiceName]
		if !ok {
			st = &ServiceStats{ServiceName: c.ServiceName}
			byService[c.ServiceName] = st
			charged[c.ServiceName] = make(map[string]float64)
		}
		st.TotalCharged += c.Amount

		alloc := billing.Allocate(billing.TermsFromCharge(c), today)
		st.WeeksInContract += alloc.WeeksInContract
		st.WeeksRendered += alloc.WeeksRendered
		st.RenderedAmount += alloc.RenderedAmount
		for key, amount := range alloc.Amounts {
			charged[c.ServiceName][key] += amount
		}
	}
	for _, p := range payments {
		if st, ok := byService[p.ServiceName]; ok {
			st.TotalPaid += p.Amount
		}
	}

	names := make([]string, 0, len(byService))
	for name := range byService {
		names = append(names, name)
	}
	sort.Strings(names)

	stats := make([]*ServiceStats, 0, len(names))
	for _, name := range names {
		st := byService[name]
		st.Position = billing.ComputePosition(st.TotalCharged, st.TotalPaid, st.WeeksInContract, st.WeeksRendered)

		weeks := make([]string, 0, len(charged[name]))
		for key := range charged[name] {
			weeks = append(weeks, key)
		}
		sort.Strings(weeks)
		paid := billing.DistributePaid(weeks, charged[name], st.TotalPaid)
		for _, key := range weeks {
			st.Weeks = append(st.Weeks, WeekSlice{Week: key, Charged: charged[name][key], Paid: paid[key]})
		}
		stats = append(stats, st)
	}
	return stats, nil
}
