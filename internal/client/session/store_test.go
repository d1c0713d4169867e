package session

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/meetrec/internal/client/client"
	"github.com/dmitrijs2005/meetrec/internal/client/models"
	"github.com/dmitrijs2005/meetrec/internal/client/repositories/metadata"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleCredential() *models.Credential {
	return &models.Credential{
		Token:     "tok-1",
		TokenType: "bearer",
		User:      &models.User{ID: "u1", Name: "Ann", Email: "ann@example.com", City: "Riga"},
	}
}

func TestStore_SetThenGet(t *testing.T) {
	s := NewStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, sampleCredential()))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleCredential(), got)
}

func TestStore_GetEmpty_ReturnsNil(t *testing.T) {
	s := NewStore(setupDB(t))

	got, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SetRejectsPartialCredential(t *testing.T) {
	s := NewStore(setupDB(t))
	ctx := context.Background()

	err := s.Set(ctx, &models.Credential{Token: "tok"})
	require.ErrorIs(t, err, ErrIncompleteCredential)

	err = s.Set(ctx, &models.Credential{User: &models.User{ID: "u1"}})
	require.ErrorIs(t, err, ErrIncompleteCredential)

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ClearRemovesAllSlots(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, sampleCredential()))
	require.NoError(t, s.Clear(ctx))

	repo := metadata.NewSQLiteRepository(db)
	for _, k := range []string{KeyAccessToken, KeyTokenType, KeyUser} {
		v, err := repo.Get(ctx, k)
		require.NoError(t, err)
		assert.Nil(t, v, k)
	}

	// clearing twice is fine
	require.NoError(t, s.Clear(ctx))
}

func TestStore_PartialSlotsReadAsAbsent(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()

	require.NoError(t, metadata.NewSQLiteRepository(db).Set(ctx, KeyAccessToken, []byte("orphan")))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_CorruptUserIsAnError(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()

	repo := metadata.NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, KeyAccessToken, []byte("tok")))
	require.NoError(t, repo.Set(ctx, KeyUser, []byte("{not json")))

	_, err := s.Get(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode stored user")
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	db, err := client.InitDatabase(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewStore(db).Set(ctx, sampleCredential()))
	require.NoError(t, db.Close())

	db, err = client.InitDatabase(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	got, err := NewStore(db).Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok-1", got.Token)
}

func TestStore_UpdateUserKeepsToken(t *testing.T) {
	s := NewStore(setupDB(t))
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, sampleCredential()))

	updated := &models.User{ID: "u1", Name: "Ann B", Email: "ann@example.com", Country: "LV"}
	require.NoError(t, s.UpdateUser(ctx, updated))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.Token)
	assert.Equal(t, "bearer", got.TokenType)
	assert.Equal(t, updated, got.User)
}

func TestStore_UpdateUserWithoutSession(t *testing.T) {
	s := NewStore(setupDB(t))

	err := s.UpdateUser(context.Background(), &models.User{ID: "u1"})
	require.ErrorIs(t, err, ErrNoSession)
}
