package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/domain"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/store"
	"github.com/aussiebroadwan/dslauncher/pkg/cryptox"
	"github.com/aussiebroadwan/dslauncher/pkg/idx"
)

// PendingRequests tracks logins waiting for the DocuSign redirect. Only the
// fingerprint of the state parameter is stored.
type PendingRequests struct {
	Store store.Store
	TTL   time.Duration
}

// Create records a pending login for sess and returns the state to send.
func (p *PendingRequests) Create(
	ctx context.Context,
	sess *domain.Session,
	kind domain.AuthType,
	verifier, returnTo string,
) (string, error) {
	state, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}

	ttl := p.TTL
	if ttl <= 0 {
		ttl = DefaultAuthRequestTTL
	}
	now := time.Now()

	err = p.Store.AuthRequests().CreateAuthRequest(ctx, domain.AuthRequest{
		ID:        idx.New().String(),
		StateHash: cryptox.FingerprintToken(state),
		SessionID: sess.ID,
		AuthType:  kind,
		Verifier:  verifier,
		ReturnTo:  returnTo,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	})
	if err != nil {
		return "", fmt.Errorf("store auth request: %w", err)
	}
	return state, nil
}

// Consume removes the pending request for state and returns it. The request
// is deleted even when it turns out to be unusable, so a state can never be
// tried twice. It must belong to sess and to kind, when kind is set.
func (p *PendingRequests) Consume(
	ctx context.Context,
	sess *domain.Session,
	kind domain.AuthType,
	state string,
) (domain.AuthRequest, error) {
	if state == "" {
		return domain.AuthRequest{}, ErrInvalidState
	}

	var req domain.AuthRequest
	err := p.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		req, err = tx.AuthRequests().GetAuthRequestByStateHash(ctx, cryptox.FingerprintToken(state))
		if err != nil {
			return err
		}
		return tx.AuthRequests().DeleteAuthRequest(ctx, req.ID)
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.AuthRequest{}, ErrInvalidState
	}
	if err != nil {
		return domain.AuthRequest{}, err
	}

	switch {
	case req.Expired(time.Now()):
		return domain.AuthRequest{}, fmt.Errorf("%w: expired", ErrInvalidState)
	case req.SessionID != sess.ID:
		return domain.AuthRequest{}, fmt.Errorf("%w: session mismatch", ErrInvalidState)
	case kind != "" && req.AuthType != kind:
		return domain.AuthRequest{}, fmt.Errorf("%w: auth type mismatch", ErrInvalidState)
	}
	return req, nil
}
