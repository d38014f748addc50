package application

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
	"github.com/bkeenke/bkcloud-cli/internal/ports"
	"go.uber.org/zap"
)

// PresetAmounts are the quick-pick top-up amounts, shown only when nothing
// dictates the amount already (no debt, no prefill).
var PresetAmounts = []int{100, 200, 500, 1000}

// TopUpRequest is a submitted top-up form. PendingServiceID, when non-zero,
// is an order to place before the payment link is produced.
type TopUpRequest struct {
	Amount           int
	PaySystem        domain.PaySystem
	PendingServiceID int64
}

// TopUpResult carries the payment URL. External means the link was handed to
// the host and no in-app navigation is needed.
type TopUpResult struct {
	PaymentURL string
	External   bool
}

// TopUpService validates and submits top-ups. With linkOut set, payment links
// open through the host bridge; otherwise the redirect chain is resolved
// in-app.
type TopUpService struct {
	services ports.ServicesAPI
	payments ports.PaymentsAPI
	bridge   ports.HostBridge
	linkOut  bool
	log      *zap.Logger
}

func NewTopUpService(services ports.ServicesAPI, payments ports.PaymentsAPI, bridge ports.HostBridge, linkOut bool, log *zap.Logger) *TopUpService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TopUpService{
		services: services,
		payments: payments,
		bridge:   bridge,
		linkOut:  linkOut,
		log:      log,
	}
}

// Load fetches what the top-up form needs: the configured pay systems and
// the current forecast.
func (s *TopUpService) Load(ctx context.Context) ([]domain.PaySystem, domain.Forecast, error) {
	systems, err := s.payments.PaySystems(ctx)
	if err != nil {
		return nil, domain.Forecast{}, fmt.Errorf("load pay systems: %w", err)
	}

	forecast, err := s.payments.Forecast(ctx)
	if err != nil {
		return nil, domain.Forecast{}, fmt.Errorf("load forecast: %w", err)
	}
	return systems, forecast, nil
}

// ShowPresets reports whether the quick-pick amounts apply: only when there
// is no debt to pay and no amount was carried in.
func ShowPresets(forecast domain.Forecast, initialAmount int) bool {
	return !forecast.HasUnpaid() && initialAmount == 0
}

// Submit validates the request, places the pending order if one is attached,
// and produces the payment link. A pending-order failure aborts before any
// payment step.
func (s *TopUpService) Submit(ctx context.Context, req TopUpRequest) (TopUpResult, error) {
	if req.PaySystem.ID == "" {
		return TopUpResult{}, domain.ErrNoPaySystem
	}
	if req.Amount <= 0 {
		return TopUpResult{}, domain.ErrInvalidAmount
	}
	if req.PaySystem.PayURL == "" {
		return TopUpResult{}, domain.ErrPaySystemDown
	}

	if req.PendingServiceID != 0 {
		if _, err := s.services.Order(ctx, req.PendingServiceID, nil); err != nil {
			return TopUpResult{}, fmt.Errorf("place pending order: %w", err)
		}
		s.log.Info("pending order placed", zap.Int64("service_id", req.PendingServiceID))
	}

	paymentURL := req.PaySystem.PayURL + strconv.Itoa(req.Amount)

	if s.linkOut {
		s.bridge.OpenLink(paymentURL)
		s.log.Info("payment link opened externally",
			zap.String("pay_system", req.PaySystem.ID),
			zap.Int("amount", req.Amount))
		return TopUpResult{PaymentURL: paymentURL, External: true}, nil
	}

	final, err := s.payments.PaymentRedirect(ctx, paymentURL)
	if err != nil {
		return TopUpResult{}, fmt.Errorf("resolve payment redirect: %w", err)
	}

	s.log.Info("payment link resolved",
		zap.String("pay_system", req.PaySystem.ID),
		zap.Int("amount", req.Amount))
	return TopUpResult{PaymentURL: final}, nil
}
