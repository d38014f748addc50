package application

import (
	"context"
	"fmt"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
	"github.com/bkeenke/bkcloud-cli/internal/ports"
	"go.uber.org/zap"
)

type DecisionKind int

const (
	// DecideConfirm asks the user to confirm the order; the balance covers it.
	DecideConfirm DecisionKind = iota
	// DecideTopUp diverts to the top-up flow before anything is ordered.
	DecideTopUp
)

// OrderDecision is the outcome of evaluating an order attempt. For a top-up
// diversion Amount prefills the form; PendingServiceID, when non-zero, is the
// catalog service to order after the funds arrive.
type OrderDecision struct {
	Kind             DecisionKind
	Service          domain.CatalogService
	Amount           int
	PendingServiceID int64
}

// OrderService decides how an order attempt proceeds and places confirmed
// orders.
type OrderService struct {
	users    ports.UserAPI
	services ports.ServicesAPI
	payments ports.PaymentsAPI
	log      *zap.Logger
}

func NewOrderService(users ports.UserAPI, services ports.ServicesAPI, payments ports.PaymentsAPI, log *zap.Logger) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{users: users, services: services, payments: payments, log: log}
}

// Evaluate fetches the current balance and forecast and decides whether the
// order can be confirmed directly or has to go through a top-up first.
func (s *OrderService) Evaluate(ctx context.Context, service domain.CatalogService) (OrderDecision, error) {
	user, err := s.users.Profile(ctx)
	if err != nil {
		return OrderDecision{}, fmt.Errorf("load profile: %w", err)
	}

	forecast, err := s.payments.Forecast(ctx)
	if err != nil {
		// Backends without the forecast endpoint still have to sell: fall
		// back to a balance-only decision.
		s.log.Warn("load forecast", zap.Error(err))
		forecast = domain.Forecast{}
	}

	return Decide(service, user.Balance, forecast), nil
}

// Decide applies the order rules in priority order: outstanding debt first,
// then a sufficient balance, then the shortfall top-up carrying the service
// as pending.
func Decide(service domain.CatalogService, balance float64, forecast domain.Forecast) OrderDecision {
	if forecast.HasUnpaid() {
		return OrderDecision{
			Kind:    DecideTopUp,
			Service: service,
			Amount:  forecast.Debt(),
		}
	}

	if balance >= service.Cost {
		return OrderDecision{Kind: DecideConfirm, Service: service}
	}

	return OrderDecision{
		Kind:             DecideTopUp,
		Service:          service,
		Amount:           domain.Shortfall(service.Cost, balance),
		PendingServiceID: service.ID,
	}
}

// Place orders the catalog service. Called only after a confirm decision was
// accepted by the user; a rejected confirm never reaches the backend.
func (s *OrderService) Place(ctx context.Context, serviceID int64) (domain.OwnedService, error) {
	owned, err := s.services.Order(ctx, serviceID, nil)
	if err != nil {
		return domain.OwnedService{}, fmt.Errorf("place order: %w", err)
	}

	s.log.Info("order placed",
		zap.Int64("service_id", serviceID),
		zap.Int64("owned_id", owned.ID))
	return owned, nil
}
