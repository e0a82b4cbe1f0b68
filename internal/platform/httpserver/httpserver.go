package httpserver

import (
	"net/http"
	"time"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/platform/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
)

// New builds the API listener. Read and write timeouts come from cfg; bulk
// imports are the slowest requests, so WriteTimeout must cover one batch.
func New(cfg config.Server, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       idleTimeout,
	}
}
