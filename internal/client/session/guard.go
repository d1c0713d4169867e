package session

import (
	"context"

	"github.com/dmitrijs2005/meetrec/internal/client/client"
	"github.com/dmitrijs2005/meetrec/internal/client/models"
	"github.com/dmitrijs2005/meetrec/internal/logging"
)

// CredentialReader is the read side of Store.
type CredentialReader interface {
	Get(ctx context.Context) (*models.Credential, error)
}

// Guard decides whether authenticated commands may run.
type Guard struct {
	store CredentialReader
	log   logging.Logger
}

func NewGuard(store CredentialReader, log logging.Logger) *Guard {
	if log == nil {
		log = logging.Nop()
	}
	return &Guard{store: store, log: log}
}

// IsAuthenticated is true iff a complete credential is stored. A store
// that cannot be read counts as unauthenticated.
func (g *Guard) IsAuthenticated(ctx context.Context) bool {
	_, err := g.Require(ctx)
	return err == nil
}

// Require returns the stored credential or client.ErrUnauthorized.
func (g *Guard) Require(ctx context.Context) (*models.Credential, error) {
	cred, err := g.store.Get(ctx)
	if err != nil {
		g.log.Error(ctx, "reading credential failed", "error", err)
		return nil, client.ErrUnauthorized
	}
	if !cred.Valid() {
		return nil, client.ErrUnauthorized
	}
	return cred, nil
}
