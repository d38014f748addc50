package bridge

import (
	"github.com/bkeenke/bkcloud-cli/internal/domain"
	"github.com/bkeenke/bkcloud-cli/internal/ports"
)

// Noop is the standalone-mode bridge: no host, every call is ignored.
type Noop struct{}

var _ ports.HostBridge = Noop{}

func (Noop) Hosted() bool     { return false }
func (Noop) InitData() string { return "" }

func (Noop) User() (domain.TelegramUser, bool) {
	return domain.TelegramUser{}, false
}

func (Noop) Ready()                    {}
func (Noop) Expand()                   {}
func (Noop) SetHeaderColor(string)     {}
func (Noop) SetBackgroundColor(string) {}
func (Noop) HapticSelection()          {}
func (Noop) HapticImpact(string)       {}
func (Noop) OpenLink(string)           {}
func (Noop) ShowBackButton()           {}
func (Noop) HideBackButton()           {}
