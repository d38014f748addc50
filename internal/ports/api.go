package ports

import (
	"context"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
)

// AuthAPI exchanges credentials or Telegram init data for a backend session.
type AuthAPI interface {
	TelegramAuth(ctx context.Context, initData string) (domain.SessionID, error)
	Login(ctx context.Context, creds domain.Credentials) (domain.SessionID, error)
	// RegistrationOpen probes whether self-registration is permitted. The
	// backend has no capability endpoint, so this infers it from an
	// unauthenticated profile read; any failure means "closed".
	RegistrationOpen(ctx context.Context) bool
}

type UserAPI interface {
	Profile(ctx context.Context) (domain.User, error)
	Register(ctx context.Context, creds domain.Credentials) (domain.User, error)
	UpdateProfile(ctx context.Context, fields map[string]any) (domain.User, error)
}

type ServicesAPI interface {
	Catalog(ctx context.Context) ([]domain.CatalogService, error)
	CatalogService(ctx context.Context, id int64) (domain.CatalogService, error)
	Order(ctx context.Context, serviceID int64, settings map[string]any) (domain.OwnedService, error)
	OwnedServices(ctx context.Context) ([]domain.OwnedService, error)
	OwnedService(ctx context.Context, id int64) (domain.OwnedService, error)
	DeleteService(ctx context.Context, id int64) error
}

type PaymentsAPI interface {
	PaySystems(ctx context.Context) ([]domain.PaySystem, error)
	Forecast(ctx context.Context) (domain.Forecast, error)
	CreatePayment(ctx context.Context, amount int, paySystemID string) (string, error)
	// PaymentRedirect resolves a pay-system URL without following redirects,
	// returning the final URL to navigate to.
	PaymentRedirect(ctx context.Context, url string) (string, error)
}

// SessionCarrier is the transport-side holder of the current session id,
// attached to every outbound request.
type SessionCarrier interface {
	SetSession(id domain.SessionID)
	ClearSession()
	Session() domain.SessionID
}
