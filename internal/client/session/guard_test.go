package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/meetrec/internal/client/client"
	"github.com/dmitrijs2005/meetrec/internal/client/models"
)

type fakeReader struct {
	cred *models.Credential
	err  error
}

func (f fakeReader) Get(context.Context) (*models.Credential, error) {
	return f.cred, f.err
}

func TestGuard(t *testing.T) {
	tests := []struct {
		name   string
		reader fakeReader
		authed bool
	}{
		{"complete credential", fakeReader{cred: sampleCredential()}, true},
		{"no credential", fakeReader{}, false},
		{"token without user", fakeReader{cred: &models.Credential{Token: "t"}}, false},
		{"store error", fakeReader{err: errors.New("disk gone")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuard(tt.reader, nil)
			ctx := context.Background()

			assert.Equal(t, tt.authed, g.IsAuthenticated(ctx))

			cred, err := g.Require(ctx)
			if tt.authed {
				require.NoError(t, err)
				assert.Equal(t, tt.reader.cred, cred)
			} else {
				require.ErrorIs(t, err, client.ErrUnauthorized)
				assert.Nil(t, cred)
			}
		})
	}
}

func TestGuard_FollowsStoreAfterLogout(t *testing.T) {
	s := NewStore(setupDB(t))
	g := NewGuard(s, nil)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, sampleCredential()))
	assert.True(t, g.IsAuthenticated(ctx))

	require.NoError(t, s.Clear(ctx))
	assert.False(t, g.IsAuthenticated(ctx))
}
