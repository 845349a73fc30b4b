package transport

import (
	"net"
	"net/http"
	"time"
)

const userAgent = "translator/1.0"

// NewHTTPClient возвращает http.Client с таймаутом и общим пулом соединений.
// Клиент безопасен для конкурентных запросов.
func NewHTTPClient(timeout time.Duration) *http.Client {
	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &uaTransport{next: base},
	}
}

// uaTransport проставляет User-Agent, если вызывающий его не задал.
type uaTransport struct {
	next http.RoundTripper
}

func (t *uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", userAgent)
	return t.next.RoundTrip(clone)
}
