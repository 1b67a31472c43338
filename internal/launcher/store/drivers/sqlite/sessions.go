package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/domain"
)

type sessionsRepo struct {
	db dbtx
}

const sessionColumns = `id, auth_type, access_token_sealed, refresh_token_sealed, token_expires_at,
	user_id, user_name, user_email, account_id, account_name, base_uri,
	created_at, updated_at, expires_at`

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.SessionRecord) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, string(s.AuthType), s.SealedAccessToken, s.SealedRefreshToken, mapOptionalTime(s.TokenExpiresAt),
		s.UserID, s.UserName, s.UserEmail, s.AccountID, s.AccountName, s.BaseURI,
		toUnix(s.CreatedAt), toUnix(s.UpdatedAt), toUnix(s.ExpiresAt),
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSession(ctx context.Context, id string) (domain.SessionRecord, error) {
	var (
		rec                            domain.SessionRecord
		authType                       string
		tokenExpires                   sql.NullInt64
		createdAt, updatedAt, expireAt int64
	)
	err := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id).Scan(
		&rec.ID, &authType, &rec.SealedAccessToken, &rec.SealedRefreshToken, &tokenExpires,
		&rec.UserID, &rec.UserName, &rec.UserEmail, &rec.AccountID, &rec.AccountName, &rec.BaseURI,
		&createdAt, &updatedAt, &expireAt,
	)
	if err != nil {
		return domain.SessionRecord{}, mapNotFound(err)
	}

	rec.AuthType = domain.AuthType(authType)
	rec.TokenExpiresAt = mapNullTimePtr(tokenExpires)
	rec.CreatedAt = fromUnix(createdAt)
	rec.UpdatedAt = fromUnix(updatedAt)
	rec.ExpiresAt = fromUnix(expireAt)
	return rec, nil
}

func (r *sessionsRepo) UpdateSession(ctx context.Context, s domain.SessionRecord) error {
	return requireAffected(r.db.ExecContext(ctx, `UPDATE sessions SET
		auth_type = ?, access_token_sealed = ?, refresh_token_sealed = ?, token_expires_at = ?,
		user_id = ?, user_name = ?, user_email = ?, account_id = ?, account_name = ?, base_uri = ?,
		updated_at = ?, expires_at = ?
		WHERE id = ?`,
		string(s.AuthType), s.SealedAccessToken, s.SealedRefreshToken, mapOptionalTime(s.TokenExpiresAt),
		s.UserID, s.UserName, s.UserEmail, s.AccountID, s.AccountName, s.BaseURI,
		toUnix(time.Now()), toUnix(s.ExpiresAt),
		s.ID,
	))
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id))
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, toUnix(now)))
}
