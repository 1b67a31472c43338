// Package dsauth talks to the DocuSign account server (account-d.docusign.com
// for developer accounts, account.docusign.com for production).
//
// It covers the Authorization Code Grant with PKCE, the JWT Grant used for
// impersonation, refresh, consent URLs and the userinfo endpoint used for
// account discovery. Token lifecycle decisions (when to refresh, when to send
// the user back through consent) are left to callers.
package dsauth
