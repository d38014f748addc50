package ports

import (
	"context"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
)

// SessionStore persists the session id across runs (the cookie analogue).
// Load returns domain.ErrNoSession when nothing is stored.
type SessionStore interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}
