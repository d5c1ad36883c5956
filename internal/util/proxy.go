// Package util provides utility functions for the ChirpDeck server,
// including outbound HTTP client construction with optional proxy support.
package util

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/proxy"
)

// NewHTTPClient builds an outbound HTTP client with the given timeout and,
// when proxyURL is non-empty, routes requests through the configured proxy.
// SOCKS5, HTTP, and HTTPS proxies are supported.
func NewHTTPClient(timeout time.Duration, proxyURL string) *http.Client {
	client := &http.Client{Timeout: timeout}
	if proxyURL == "" {
		return client
	}

	parsed, errParse := url.Parse(proxyURL)
	if errParse != nil {
		log.Errorf("invalid proxy url %q: %v", proxyURL, errParse)
		return client
	}

	var transport *http.Transport
	switch parsed.Scheme {
	case "socks5":
		var proxyAuth *proxy.Auth
		if parsed.User != nil {
			username := parsed.User.Username()
			password, _ := parsed.User.Password()
			proxyAuth = &proxy.Auth{User: username, Password: password}
		}
		dialer, errSOCKS5 := proxy.SOCKS5("tcp", parsed.Host, proxyAuth, proxy.Direct)
		if errSOCKS5 != nil {
			log.Errorf("create SOCKS5 dialer failed: %v", errSOCKS5)
			return client
		}
		transport = &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			},
		}
	case "http", "https":
		transport = &http.Transport{Proxy: http.ProxyURL(parsed)}
	default:
		log.Errorf("unsupported proxy scheme %q", parsed.Scheme)
	}

	if transport != nil {
		client.Transport = transport
	}
	return client
}
