package customHttpClient

import (
	"net/http"
	"time"

	"docvoice/internal/config"
)

// Shared transport so every bucket download reuses connections instead of
// re-dialing the object store per request.
var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: customTransport,
	}
}
