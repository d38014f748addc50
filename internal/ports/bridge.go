package ports

import "github.com/bkeenke/bkcloud-cli/internal/domain"

// HostBridge abstracts the Telegram Mini App host surface. Detection happens
// once at bootstrap; everything downstream calls the bridge unconditionally
// and the standalone implementation ignores the calls.
type HostBridge interface {
	// Hosted reports whether the app runs inside the Telegram host with
	// non-empty init data.
	Hosted() bool
	InitData() string
	// User returns the unsafely-parsed profile fields from init data, if any.
	User() (domain.TelegramUser, bool)

	Ready()
	Expand()
	SetHeaderColor(color string)
	SetBackgroundColor(color string)
	HapticSelection()
	HapticImpact(style string)
	OpenLink(url string)
	ShowBackButton()
	HideBackButton()
}
