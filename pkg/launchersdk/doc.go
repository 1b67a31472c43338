/*
Package launchersdk is a Go client for the DocuSign examples launcher.

# Overview

The launcher keeps the DocuSign credentials server side and hands the browser
a session cookie. The client therefore carries a cookie jar and never sees an
access token:

	client := launchersdk.NewClient("http://localhost:3000")

	// Start a login; the result is where a browser would be sent next.
	next, err := client.Login(ctx, "code", "/v1/session")

	// After DocuSign redirects back with ?code=...&state=...
	returnTo, err := client.Callback(ctx, code, state)

	sess, err := client.Session(ctx)
	out, err := client.RunExample(ctx, "esignature", "eg003", nil)

# Errors

Every non-success response is returned as *Error. When the session has no
usable token, Code is CodeReauthenticate and LoginURL tells the caller where to
start over:

	var lerr *launchersdk.Error
	if errors.As(err, &lerr) && lerr.Reauthenticate() {
		next, err = client.Get(ctx, lerr.LoginURL)
	}

The wire types in this package are also what the server encodes, so the two
cannot drift apart.
*/
package launchersdk
