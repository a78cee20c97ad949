package httpserver

import (
	"net/http"
	"time"
)

// Requests are capped at 30s by the timeout middleware; the write timeout
// leaves headroom so the middleware, not the server, terminates slow requests
// and the client still receives a response body.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 35 * time.Second
	idleTimeout       = 60 * time.Second
)

// New builds the admin HTTP server with timeouts aligned to the per-request
// deadline enforced by the middleware chain.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
