package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"docvoice/internal/adapter/utils"
	"docvoice/internal/config"
	"docvoice/internal/handlers"
	"docvoice/internal/middleware"
	"docvoice/pkg/logx"
)

var (
	server  *http.Server
	_logger *logx.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string, h *handlers.Handler, chain *middleware.Chain, mcpHandler http.Handler) {
	_logger = logx.New("server")

	r := utils.GetRouter()

	r.Router.Get("/healthz", chain.Wrap(h.Healthz))
	r.Router.Post("/ingest", chain.Wrap(h.PostIngest))
	r.Router.Post("/query", chain.Wrap(h.PostQuery))
	r.Router.Post("/answer", chain.WrapProtected(h.PostAnswer))
	r.Router.Get("/documents/{slug}", chain.Wrap(h.GetDocument))
	r.Router.Handle("/mcp", chain.WrapProtected(mcpHandler.ServeHTTP))

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err.Error())
		}

		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Graceful shutdown complete")
	case <-ctx.Done():
		_logger.Info("Force shut down")
		os.Exit(1)
	}
}
