package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers implement it and expose
// sub-repositories so transactions cannot be nested by accident.
type Store interface {
	Sessions() Sessions
	AuthRequests() AuthRequests

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.SessionRecord) error

	GetSession(ctx context.Context, id string) (domain.SessionRecord, error)

	// UpdateSession overwrites every mutable column and bumps updated_at.
	UpdateSession(ctx context.Context, s domain.SessionRecord) error

	// DeleteSession cascades to auth_requests.
	DeleteSession(ctx context.Context, id string) error

	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type AuthRequests interface {
	CreateAuthRequest(ctx context.Context, r domain.AuthRequest) error

	GetAuthRequestByStateHash(ctx context.Context, stateHash string) (domain.AuthRequest, error)

	DeleteAuthRequest(ctx context.Context, id string) error

	DeleteExpiredAuthRequests(ctx context.Context, now time.Time) (int64, error)
}
