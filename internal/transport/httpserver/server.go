package httpserver

import (
	"net/http"
	"time"

	"fittrack-go/internal/config"
)

func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		// Meal photos are posted as base64 JSON bodies.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
}
