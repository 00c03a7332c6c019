package middleware

import (
	"net/http"
	"strconv"

	"docvoice/internal/metrics"
	"docvoice/pkg/logx"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logx.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

// Chain builds the per-endpoint middleware stack. The shared secret is
// optional; endpoints wrapped with WrapProtected reject callers without it
// only when one is configured.
type Chain struct {
	sharedSecret string
	limiter      *IPRateLimiter
}

func NewChain(sharedSecret string) *Chain {
	return &Chain{
		sharedSecret: sharedSecret,
		limiter:      newDefaultLimiter(),
	}
}

// Wrap applies trace injection, rate limiting and request metrics.
func (c *Chain) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return c.wrap(next, false)
}

// WrapProtected additionally requires the shared secret when configured.
func (c *Chain) WrapProtected(next http.HandlerFunc) http.HandlerFunc {
	return c.wrap(next, true)
}

func (c *Chain) wrap(next http.HandlerFunc, protected bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200}
		re := c.processRequest(requestResponseStruct{req: r, writer: rec}, protected)

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
			metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(re.badRequest.httpCode)).Inc()
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc()
	}
}

func (c *Chain) processRequest(re requestResponseStruct, protected bool) requestResponseStruct {
	re.logger = logx.New("middleware")

	re = injectTrace(re)
	re = c.rateLimit(re)
	if re.badRequest.isBadRequest {
		return re
	}
	if protected {
		re = c.authenticate(re)
	}
	return re
}
