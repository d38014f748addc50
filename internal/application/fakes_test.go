package application

import (
	"context"
	"errors"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
)

// fakeBackend implements the API ports with canned data and call recording.
type fakeBackend struct {
	user        domain.User
	userErr     error
	forecast    domain.Forecast
	forecastErr error
	systems     []domain.PaySystem
	systemsErr  error
	sessionID   domain.SessionID
	loginErr    error
	tgErr       error
	regOpen     bool
	registerErr error
	orderErr    error
	redirectURL string
	redirectErr error

	orderCalls    []int64
	redirectCalls []string
	loginCalls    int
	tgCalls       int
}

func (f *fakeBackend) TelegramAuth(_ context.Context, _ string) (domain.SessionID, error) {
	f.tgCalls++
	if f.tgErr != nil {
		return "", f.tgErr
	}
	return f.sessionID, nil
}

func (f *fakeBackend) Login(_ context.Context, _ domain.Credentials) (domain.SessionID, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.sessionID, nil
}

func (f *fakeBackend) RegistrationOpen(_ context.Context) bool { return f.regOpen }

func (f *fakeBackend) Profile(_ context.Context) (domain.User, error) {
	return f.user, f.userErr
}

func (f *fakeBackend) Register(_ context.Context, _ domain.Credentials) (domain.User, error) {
	if f.registerErr != nil {
		return domain.User{}, f.registerErr
	}
	return f.user, nil
}

func (f *fakeBackend) UpdateProfile(_ context.Context, _ map[string]any) (domain.User, error) {
	return f.user, f.userErr
}

func (f *fakeBackend) Catalog(_ context.Context) ([]domain.CatalogService, error) {
	return nil, nil
}

func (f *fakeBackend) CatalogService(_ context.Context, _ int64) (domain.CatalogService, error) {
	return domain.CatalogService{}, nil
}

func (f *fakeBackend) Order(_ context.Context, serviceID int64, _ map[string]any) (domain.OwnedService, error) {
	f.orderCalls = append(f.orderCalls, serviceID)
	if f.orderErr != nil {
		return domain.OwnedService{}, f.orderErr
	}
	return domain.OwnedService{ID: 900, ServiceID: serviceID}, nil
}

func (f *fakeBackend) OwnedServices(_ context.Context) ([]domain.OwnedService, error) {
	return nil, nil
}

func (f *fakeBackend) OwnedService(_ context.Context, _ int64) (domain.OwnedService, error) {
	return domain.OwnedService{}, nil
}

func (f *fakeBackend) DeleteService(_ context.Context, _ int64) error { return nil }

func (f *fakeBackend) PaySystems(_ context.Context) ([]domain.PaySystem, error) {
	return f.systems, f.systemsErr
}

func (f *fakeBackend) Forecast(_ context.Context) (domain.Forecast, error) {
	return f.forecast, f.forecastErr
}

func (f *fakeBackend) CreatePayment(_ context.Context, _ int, _ string) (string, error) {
	return f.redirectURL, f.redirectErr
}

func (f *fakeBackend) PaymentRedirect(_ context.Context, url string) (string, error) {
	f.redirectCalls = append(f.redirectCalls, url)
	if f.redirectErr != nil {
		return "", f.redirectErr
	}
	if f.redirectURL != "" {
		return f.redirectURL, nil
	}
	return url, nil
}

type fakeCarrier struct {
	session domain.SessionID
	sets    int
	clears  int
}

func (c *fakeCarrier) SetSession(id domain.SessionID) {
	c.session = id
	c.sets++
}

func (c *fakeCarrier) ClearSession() {
	c.session = ""
	c.clears++
}

func (c *fakeCarrier) Session() domain.SessionID { return c.session }

type fakeStore struct {
	session domain.Session
	loadErr error
	saveErr error
	saves   int
	clears  int
}

func (s *fakeStore) Load(_ context.Context) (domain.Session, error) {
	if s.loadErr != nil {
		return domain.Session{}, s.loadErr
	}
	if s.session.ID == "" {
		return domain.Session{}, domain.ErrNoSession
	}
	return s.session, nil
}

func (s *fakeStore) Save(_ context.Context, session domain.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.session = session
	s.saves++
	return nil
}

func (s *fakeStore) Clear(_ context.Context) error {
	s.session = domain.Session{}
	s.clears++
	return nil
}

// fakeBridge records host calls for hosted-mode assertions.
type fakeBridge struct {
	hosted   bool
	initData string
	user     domain.TelegramUser

	ready     int
	expand    int
	haptics   int
	backShows int
	backHides int
	opened    []string
	headerCol string
	bgCol     string
}

func (b *fakeBridge) Hosted() bool     { return b.hosted }
func (b *fakeBridge) InitData() string { return b.initData }

func (b *fakeBridge) User() (domain.TelegramUser, bool) {
	return b.user, b.user.FirstName != ""
}

func (b *fakeBridge) Ready()                        { b.ready++ }
func (b *fakeBridge) Expand()                       { b.expand++ }
func (b *fakeBridge) SetHeaderColor(color string)   { b.headerCol = color }
func (b *fakeBridge) SetBackgroundColor(col string) { b.bgCol = col }
func (b *fakeBridge) HapticSelection()              { b.haptics++ }
func (b *fakeBridge) HapticImpact(string)           {}
func (b *fakeBridge) OpenLink(link string)          { b.opened = append(b.opened, link) }
func (b *fakeBridge) ShowBackButton()               { b.backShows++ }
func (b *fakeBridge) HideBackButton()               { b.backHides++ }

var errBackend = errors.New("backend says no")
