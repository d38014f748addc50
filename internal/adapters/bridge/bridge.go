// Package bridge adapts the Telegram Mini App host surface. Detection runs
// once at startup: when the host hands over init data (via the launch
// environment) the app is in hosted mode and every host call goes through
// the Host bridge; otherwise a Noop bridge swallows the calls and the app
// behaves as a standalone client.
package bridge

import (
	"encoding/json"
	"net/url"
	"os"
	"strings"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
	"github.com/bkeenke/bkcloud-cli/internal/ports"
	"go.uber.org/zap"
)

// InitDataEnv is where the host launcher places the opaque init-data string.
const InitDataEnv = "TELEGRAM_WEBAPP_INIT_DATA"

func Detect(log *zap.Logger) ports.HostBridge {
	initData := strings.TrimSpace(os.Getenv(InitDataEnv))
	if initData == "" {
		return Noop{}
	}
	return NewHost(initData, log)
}

type Host struct {
	initData string
	user     domain.TelegramUser
	hasUser  bool
	log      *zap.Logger
}

var _ ports.HostBridge = (*Host)(nil)

func NewHost(initData string, log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}

	user, hasUser := ParseInitDataUser(initData)
	return &Host{
		initData: initData,
		user:     user,
		hasUser:  hasUser,
		log:      log,
	}
}

func (h *Host) Hosted() bool     { return true }
func (h *Host) InitData() string { return h.initData }

func (h *Host) User() (domain.TelegramUser, bool) {
	return h.user, h.hasUser
}

func (h *Host) Ready()  { h.log.Debug("bridge: ready") }
func (h *Host) Expand() { h.log.Debug("bridge: expand") }

func (h *Host) SetHeaderColor(color string) {
	h.log.Debug("bridge: set header color", zap.String("color", color))
}

func (h *Host) SetBackgroundColor(color string) {
	h.log.Debug("bridge: set background color", zap.String("color", color))
}

func (h *Host) HapticSelection() { h.log.Debug("bridge: haptic selection") }

func (h *Host) HapticImpact(style string) {
	h.log.Debug("bridge: haptic impact", zap.String("style", style))
}

func (h *Host) OpenLink(link string) {
	h.log.Info("bridge: open link", zap.String("url", link))
}

func (h *Host) ShowBackButton() { h.log.Debug("bridge: show back button") }
func (h *Host) HideBackButton() { h.log.Debug("bridge: hide back button") }

// ParseInitDataUser extracts the display-only user fields embedded in init
// data. The payload is not verified here; verification belongs to the
// backend exchange.
func ParseInitDataUser(initData string) (domain.TelegramUser, bool) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return domain.TelegramUser{}, false
	}

	raw := values.Get("user")
	if raw == "" {
		return domain.TelegramUser{}, false
	}

	var wire struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Username  string `json:"username"`
		PhotoURL  string `json:"photo_url"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return domain.TelegramUser{}, false
	}

	return domain.TelegramUser{
		FirstName: wire.FirstName,
		LastName:  wire.LastName,
		Username:  wire.Username,
		PhotoURL:  wire.PhotoURL,
	}, true
}
