// Package session owns the persisted credential and the guard that gates
// authenticated commands on it.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/meetrec/internal/client/models"
	"github.com/dmitrijs2005/meetrec/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/meetrec/internal/dbx"
)

// Metadata slots holding the credential.
const (
	KeyAccessToken = "access_token"
	KeyTokenType   = "token_type"
	KeyUser        = "user"
)

var slots = []string{KeyAccessToken, KeyTokenType, KeyUser}

// ErrIncompleteCredential is returned by Set for a credential lacking a
// token or a user.
var ErrIncompleteCredential = errors.New("credential must carry both token and user")

// ErrNoSession is returned by UpdateUser when nobody is logged in.
var ErrNoSession = errors.New("no active session")

// Store persists the credential in the local database. All three slots are
// written and removed in one transaction, so a reader never sees a token
// without its user or the other way round.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Set replaces the stored credential.
func (s *Store) Set(ctx context.Context, cred *models.Credential) error {
	if !cred.Valid() {
		return ErrIncompleteCredential
	}
	user, err := json.Marshal(cred.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyAccessToken, []byte(cred.Token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyTokenType, []byte(cred.TokenType)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUser, user)
	})
}

// Get returns the stored credential, or nil when there is none. Partial
// state left by an older client counts as no credential.
func (s *Store) Get(ctx context.Context) (*models.Credential, error) {
	var (
		token, tokenType, user []byte
	)
	err := dbx.WithTx(ctx, s.db, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		var err error
		if token, err = repo.Get(ctx, KeyAccessToken); err != nil {
			return err
		}
		if tokenType, err = repo.Get(ctx, KeyTokenType); err != nil {
			return err
		}
		user, err = repo.Get(ctx, KeyUser)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(token) == 0 || len(user) == 0 {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal(user, &u); err != nil {
		return nil, fmt.Errorf("decode stored user: %w", err)
	}
	return &models.Credential{Token: string(token), TokenType: string(tokenType), User: &u}, nil
}

// Clear removes the credential. Clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, k := range slots {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateUser swaps the stored profile, keeping the token as is.
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return ErrIncompleteCredential
	}
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		token, err := repo.Get(ctx, KeyAccessToken)
		if err != nil {
			return err
		}
		if len(token) == 0 {
			return ErrNoSession
		}
		return repo.Set(ctx, KeyUser, b)
	})
}
