package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/domain"
	"github.com/aussiebroadwan/dslauncher/pkg/dsauth"
)

// SelectAccount picks the account a session works against. A configured
// target account must be present; otherwise the user's default account is
// used.
func SelectAccount(info *dsauth.UserInfo, targetAccountID string) (dsauth.AccountInfo, error) {
	if targetAccountID != "" {
		for _, a := range info.Accounts {
			if a.AccountID == targetAccountID {
				return a, nil
			}
		}
		return dsauth.AccountInfo{}, fmt.Errorf("%w: %s", ErrTargetAccountNotFound, targetAccountID)
	}

	for _, a := range info.Accounts {
		if a.IsDefault {
			return a, nil
		}
	}
	return dsauth.AccountInfo{}, ErrNoDefaultAccount
}

func applyToken(sess *domain.Session, tok *dsauth.TokenResponse) {
	sess.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		sess.RefreshToken = tok.RefreshToken
	}

	exp := tok.Expiry
	if exp.IsZero() && tok.ExpiresIn > 0 {
		exp = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	if exp.IsZero() {
		sess.TokenExpiresAt = nil
	} else {
		sess.TokenExpiresAt = &exp
	}
}

func applyIdentity(sess *domain.Session, info *dsauth.UserInfo, acct dsauth.AccountInfo) {
	sess.UserID = info.Sub
	sess.UserName = info.Name
	sess.UserEmail = info.Email
	sess.AccountID = acct.AccountID
	sess.AccountName = acct.AccountName
	sess.BaseURI = acct.BaseURI
}
