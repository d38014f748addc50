package application

import (
	"github.com/bkeenke/bkcloud-cli/internal/domain"
	"github.com/bkeenke/bkcloud-cli/internal/ports"
)

type Tab int

const (
	TabHome Tab = iota
	TabTariffs
	TabSubscriptions
	TabProfile
)

func (t Tab) String() string {
	switch t {
	case TabHome:
		return "home"
	case TabTariffs:
		return "tariffs"
	case TabSubscriptions:
		return "subscriptions"
	case TabProfile:
		return "profile"
	default:
		return "unknown"
	}
}

type OverlayKind int

const (
	OverlayNone OverlayKind = iota
	OverlayServiceDetail
	OverlayConfirm
	OverlayTopUp
)

// TopUpPrompt is the state carried into an open top-up overlay.
type TopUpPrompt struct {
	Amount           int
	PendingServiceID int64
}

// TabController tracks the active tab and the single overlay allowed on top
// of it. Only methods here mutate navigation state; the UI renders from it.
type TabController struct {
	bridge ports.HostBridge

	active    Tab
	serviceID int64
	confirm   *domain.CatalogService
	topUp     *TopUpPrompt
}

func NewTabController(bridge ports.HostBridge) *TabController {
	return &TabController{bridge: bridge, active: TabHome}
}

func (c *TabController) Active() Tab { return c.active }

// SwitchTab activates the tab, closing any overlay. Re-selecting the active
// tab is a no-op and reports false.
func (c *TabController) SwitchTab(t Tab) bool {
	if t == c.active {
		return false
	}
	c.active = t
	c.clearOverlays()
	c.bridge.HapticSelection()
	return true
}

// OpenService shows the detail overlay for an owned service.
func (c *TabController) OpenService(id int64) {
	c.clearOverlays()
	c.serviceID = id
	c.bridge.ShowBackButton()
}

// OpenConfirm shows the order-confirmation dialog for a catalog service.
func (c *TabController) OpenConfirm(service domain.CatalogService) {
	c.clearOverlays()
	c.confirm = &service
}

// OpenTopUp shows the top-up overlay, optionally prefilled and carrying a
// pending order.
func (c *TabController) OpenTopUp(amount int, pendingServiceID int64) {
	c.clearOverlays()
	c.topUp = &TopUpPrompt{Amount: amount, PendingServiceID: pendingServiceID}
	c.bridge.ShowBackButton()
}

func (c *TabController) CloseOverlay() {
	c.clearOverlays()
}

// Overlay reports which overlay is visible. Opens reset each other, so at
// most one is set; top-up wins if state ever disagrees.
func (c *TabController) Overlay() OverlayKind {
	switch {
	case c.topUp != nil:
		return OverlayTopUp
	case c.confirm != nil:
		return OverlayConfirm
	case c.serviceID != 0:
		return OverlayServiceDetail
	default:
		return OverlayNone
	}
}

func (c *TabController) ServiceID() int64 { return c.serviceID }

func (c *TabController) Confirm() (domain.CatalogService, bool) {
	if c.confirm == nil {
		return domain.CatalogService{}, false
	}
	return *c.confirm, true
}

func (c *TabController) TopUp() (TopUpPrompt, bool) {
	if c.topUp == nil {
		return TopUpPrompt{}, false
	}
	return *c.topUp, true
}

func (c *TabController) clearOverlays() {
	if c.serviceID != 0 || c.topUp != nil {
		c.bridge.HideBackButton()
	}
	c.serviceID = 0
	c.confirm = nil
	c.topUp = nil
}
