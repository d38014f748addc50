package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	bridgeadapter "github.com/bkeenke/bkcloud-cli/internal/adapters/bridge"
	"github.com/bkeenke/bkcloud-cli/internal/adapters/shm"
	"github.com/bkeenke/bkcloud-cli/internal/adapters/state"
	"github.com/bkeenke/bkcloud-cli/internal/application"
	"github.com/bkeenke/bkcloud-cli/internal/infra/config"
	"github.com/bkeenke/bkcloud-cli/internal/infra/logging"
	"github.com/bkeenke/bkcloud-cli/internal/ports"
)

type app struct {
	cfg    config.Config
	log    *zap.Logger
	client *shm.Client
	store  *state.Store
	bridge ports.HostBridge
	auth   *application.AuthService
	orders *application.OrderService
	topUp  *application.TopUpService
	now    func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg.LogFile, cfg.LogLevel)

	client := shm.NewClient(cfg.APIBaseURL, cfg.APITimeout, log)

	store, err := state.NewStore(cfg.SessionPath)
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	hostBridge := bridgeadapter.Detect(log)

	auth := application.NewAuthService(client, client, client, store, hostBridge, ports.SystemClock{}, log)
	orders := application.NewOrderService(client, client, client, log)
	topUp := application.NewTopUpService(client, client, hostBridge, cfg.PaymentLinkOut, log)

	return &app{
		cfg:    cfg,
		log:    log,
		client: client,
		store:  store,
		bridge: hostBridge,
		auth:   auth,
		orders: orders,
		topUp:  topUp,
		now:    time.Now,
	}, nil
}

// requireSession loads the stored session into the transport so subcommands
// can call the backend without going through the interactive bootstrap.
func (a *app) requireSession(ctx context.Context) error {
	stored, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("not logged in, run \"bkcloud login\" first: %w", err)
	}

	a.client.SetSession(stored.ID)
	return nil
}
