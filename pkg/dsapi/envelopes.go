package dsapi

import (
	"context"
	"net/url"
	"time"
)

type Envelope struct {
	EnvelopeID            string `json:"envelopeId"`
	Status                string `json:"status"`
	EmailSubject          string `json:"emailSubject,omitempty"`
	CreatedDateTime       string `json:"createdDateTime,omitempty"`
	SentDateTime          string `json:"sentDateTime,omitempty"`
	CompletedDateTime     string `json:"completedDateTime,omitempty"`
	StatusChangedDateTime string `json:"statusChangedDateTime,omitempty"`
}

type EnvelopesInformation struct {
	ResultSetSize string     `json:"resultSetSize"`
	TotalSetSize  string     `json:"totalSetSize"`
	Envelopes     []Envelope `json:"envelopes"`
}

type Recipient struct {
	RecipientID  string `json:"recipientId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Status       string `json:"status"`
	RoutingOrder string `json:"routingOrder,omitempty"`
}

type Recipients struct {
	Signers        []Recipient `json:"signers"`
	CarbonCopies   []Recipient `json:"carbonCopies"`
	RecipientCount string      `json:"recipientCount"`
}

func envelopesPath(accountID string) string {
	return "/v2.1/accounts/" + url.PathEscape(accountID) + "/envelopes"
}

// ListStatusChanges lists envelopes whose status changed since fromDate.
func (c *Client) ListStatusChanges(ctx context.Context, accountID string, fromDate time.Time) (*EnvelopesInformation, error) {
	q := url.Values{"from_date": {fromDate.UTC().Format(time.RFC3339)}}

	var out EnvelopesInformation
	if err := c.get(ctx, envelopesPath(accountID), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetEnvelope(ctx context.Context, accountID, envelopeID string) (*Envelope, error) {
	var out Envelope
	if err := c.get(ctx, envelopesPath(accountID)+"/"+url.PathEscape(envelopeID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListRecipients(ctx context.Context, accountID, envelopeID string) (*Recipients, error) {
	var out Recipients
	path := envelopesPath(accountID) + "/" + url.PathEscape(envelopeID) + "/recipients"
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
