package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/domain"
)

type authRequestsRepo struct {
	db dbtx
}

func (r *authRequestsRepo) CreateAuthRequest(ctx context.Context, a domain.AuthRequest) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO auth_requests
		(id, state_hash, session_id, auth_type, verifier, return_to, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.StateHash, a.SessionID, string(a.AuthType), a.Verifier, a.ReturnTo,
		toUnix(a.ExpiresAt), toUnix(a.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *authRequestsRepo) GetAuthRequestByStateHash(ctx context.Context, stateHash string) (domain.AuthRequest, error) {
	var (
		a                    domain.AuthRequest
		authType             string
		expiresAt, createdAt int64
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, state_hash, session_id, auth_type, verifier, return_to, expires_at, created_at
		FROM auth_requests WHERE state_hash = ?`, stateHash).Scan(
		&a.ID, &a.StateHash, &a.SessionID, &authType, &a.Verifier, &a.ReturnTo, &expiresAt, &createdAt,
	)
	if err != nil {
		return domain.AuthRequest{}, mapNotFound(err)
	}

	a.AuthType = domain.AuthType(authType)
	a.ExpiresAt = fromUnix(expiresAt)
	a.CreatedAt = fromUnix(createdAt)
	return a, nil
}

func (r *authRequestsRepo) DeleteAuthRequest(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM auth_requests WHERE id = ?`, id))
}

func (r *authRequestsRepo) DeleteExpiredAuthRequests(ctx context.Context, now time.Time) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx, `DELETE FROM auth_requests WHERE expires_at <= ?`, toUnix(now)))
}
