package dsapi

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// NewTransport returns a transport for the DocuSign REST hosts with HTTP/2
// negotiated over TLS.
func NewTransport() (*http.Transport, error) {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	if err := http2.ConfigureTransport(t); err != nil {
		return nil, fmt.Errorf("configure http2: %w", err)
	}
	return t, nil
}

// NewHTTPClient wraps rt (NewTransport when nil) in a client with timeout.
func NewHTTPClient(rt http.RoundTripper, timeout time.Duration) (*http.Client, error) {
	if rt == nil {
		t, err := NewTransport()
		if err != nil {
			return nil, err
		}
		rt = t
	}
	return &http.Client{Transport: rt, Timeout: timeout}, nil
}
