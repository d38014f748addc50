// Package ui is the interactive storefront: a tabbed terminal UI over the
// billing backend, mirroring the hosted mini-app layout.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/bkeenke/bkcloud-cli/internal/application"
	"github.com/bkeenke/bkcloud-cli/internal/domain"
	"github.com/bkeenke/bkcloud-cli/internal/ports"
)

// Deps carries everything the UI needs; all calls go through the
// application services, never the transport directly.
type Deps struct {
	Auth     *application.AuthService
	Orders   *application.OrderService
	TopUp    *application.TopUpService
	Tabs     *application.TabController
	Services ports.ServicesAPI
	Payments ports.PaymentsAPI
	Bridge   ports.HostBridge

	ProfileLabel string
	SupportURL   string
	Log          *zap.Logger
}

type bootDoneMsg struct{ state application.AuthState }

type loginDoneMsg struct {
	state application.AuthState
	err   error
}

type logoutDoneMsg struct{ state application.AuthState }

type refreshUserMsg struct{ state application.AuthState }

type catalogMsg struct {
	items []domain.CatalogService
	err   error
}

type ownedMsg struct {
	items []domain.OwnedService
	err   error
}

type forecastMsg struct {
	forecast domain.Forecast
	err      error
}

type detailMsg struct {
	service domain.OwnedService
	err     error
}

type decisionMsg struct {
	decision application.OrderDecision
	err      error
}

type orderPlacedMsg struct {
	owned domain.OwnedService
	err   error
}

type topUpFormMsg struct {
	systems  []domain.PaySystem
	forecast domain.Forecast
	err      error
}

type topUpDoneMsg struct {
	result application.TopUpResult
	err    error
}

type deleteDoneMsg struct{ err error }

const (
	focusLogin = iota
	focusPassword
	focusConfirm
)

type Model struct {
	ctx    context.Context
	deps   Deps
	styles styles
	log    *zap.Logger

	width  int
	height int

	spinner spinner.Model
	booting bool
	auth    application.AuthState

	// login / registration form
	registering bool
	loginFocus  int
	loginInputs []textinput.Model
	formBusy    bool
	formErr     error

	// tab data
	catalog        []domain.CatalogService
	catalogCursor  int
	catalogLoading bool
	catalogErr     error

	owned        []domain.OwnedService
	ownedCursor  int
	ownedLoading bool
	ownedErr     error

	forecast    domain.Forecast
	forecastErr error

	// overlays
	detail        domain.OwnedService
	detailLoading bool
	detailErr     error

	paySystems   []domain.PaySystem
	payCursor    int
	amountInput  textinput.Model
	topUpLoading bool
	topUpBusy    bool
	topUpErr     error
	topUpResult  *application.TopUpResult

	confirmBusy bool
	notice      string
	noticeErr   bool
}

func NewModel(ctx context.Context, deps Deps) Model {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	login := textinput.New()
	login.Placeholder = "логин"
	login.CharLimit = 64
	login.Focus()

	password := textinput.New()
	password.Placeholder = "пароль"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "повторите пароль"
	confirm.CharLimit = 64
	confirm.EchoMode = textinput.EchoPassword

	amount := textinput.New()
	amount.Placeholder = "сумма"
	amount.CharLimit = 10

	return Model{
		ctx:         ctx,
		deps:        deps,
		styles:      newStyles(),
		log:         deps.Log,
		spinner:     s,
		booting:     true,
		loginInputs: []textinput.Model{login, password, confirm},
		amountInput: amount,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.bootCmd())
}

// Run drives the UI to completion on the caller's terminal.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(
		NewModel(ctx, deps),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}

func (m Model) bootCmd() tea.Cmd {
	return func() tea.Msg {
		return bootDoneMsg{state: m.deps.Auth.Bootstrap(m.ctx)}
	}
}

func (m Model) loginCmd(creds domain.Credentials) tea.Cmd {
	return func() tea.Msg {
		state, err := m.deps.Auth.Login(m.ctx, creds)
		return loginDoneMsg{state: state, err: err}
	}
}

func (m Model) registerCmd(creds domain.Credentials, confirm string) tea.Cmd {
	return func() tea.Msg {
		state, err := m.deps.Auth.Register(m.ctx, creds, confirm)
		return loginDoneMsg{state: state, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{state: m.deps.Auth.Logout(m.ctx)}
	}
}

func (m Model) refreshUserCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshUserMsg{state: m.deps.Auth.RefreshUser(m.ctx)}
	}
}

func (m Model) loadCatalogCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.deps.Services.Catalog(m.ctx)
		return catalogMsg{items: items, err: err}
	}
}

func (m Model) loadOwnedCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.deps.Services.OwnedServices(m.ctx)
		return ownedMsg{items: items, err: err}
	}
}

func (m Model) loadForecastCmd() tea.Cmd {
	return func() tea.Msg {
		forecast, err := m.deps.Payments.Forecast(m.ctx)
		return forecastMsg{forecast: forecast, err: err}
	}
}

func (m Model) loadDetailCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		service, err := m.deps.Services.OwnedService(m.ctx, id)
		return detailMsg{service: service, err: err}
	}
}

func (m Model) evaluateCmd(service domain.CatalogService) tea.Cmd {
	return func() tea.Msg {
		decision, err := m.deps.Orders.Evaluate(m.ctx, service)
		return decisionMsg{decision: decision, err: err}
	}
}

func (m Model) placeOrderCmd(serviceID int64) tea.Cmd {
	return func() tea.Msg {
		owned, err := m.deps.Orders.Place(m.ctx, serviceID)
		return orderPlacedMsg{owned: owned, err: err}
	}
}

func (m Model) loadTopUpFormCmd() tea.Cmd {
	return func() tea.Msg {
		systems, forecast, err := m.deps.TopUp.Load(m.ctx)
		return topUpFormMsg{systems: systems, forecast: forecast, err: err}
	}
}

func (m Model) submitTopUpCmd(req application.TopUpRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := m.deps.TopUp.Submit(m.ctx, req)
		return topUpDoneMsg{result: result, err: err}
	}
}

func (m Model) deleteServiceCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{err: m.deps.Services.DeleteService(m.ctx, id)}
	}
}
