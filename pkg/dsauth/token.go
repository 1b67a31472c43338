package dsauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/dslauncher/pkg/jwtx"
)

const GrantTypeJWTBearer = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// overridable in tests
var (
	timeNow   = time.Now
	timeUntil = func(t time.Time) time.Duration { return t.Sub(timeNow()) }
)

// JWTUserToken requests an access token impersonating userID using an RS256
// signed assertion. A consent_required error means the user has not yet
// granted the integration the impersonation scope; see ConsentURL.
func (c *Client) JWTUserToken(
	ctx context.Context,
	signer jwtx.Signer,
	userID string,
	scopes []string,
	lifetime time.Duration,
) (*TokenResponse, error) {
	if signer == nil {
		return nil, ErrMissingKey
	}

	claims := jwtx.NewAssertionClaims(jwtx.AssertionParams{
		IntegrationKey: c.ClientID,
		UserID:         userID,
		Audience:       c.Audience(),
		Scopes:         scopes,
		Lifetime:       lifetime,
		Now:            timeNow(),
	})
	assertion, err := signer.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("sign assertion: %w", err)
	}

	data := url.Values{
		"grant_type": {GrantTypeJWTBearer},
		"assertion":  {assertion},
	}
	return c.requestToken(ctx, data)
}

func (c *Client) requestToken(ctx context.Context, data url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.url("/oauth/token"),
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp.StatusCode, body)
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if tokenResp.ExpiresIn > 0 {
		tokenResp.Expiry = timeNow().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	}

	return &tokenResp, nil
}
