package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"

	"github.com/jask/bankconsole/internal/fakebank"
	"github.com/jask/bankconsole/internal/logging"
)

func main() {
	addr := pflag.String("addr", ":3000", "listen address")
	level := pflag.String("log-level", "info", "log level")
	pflag.Parse()

	logger := logging.New(*level, os.Stdout)
	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           fakebank.New().Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	srvErrCh := make(chan error, 1)
	go func() {
		logger.Info("fake bank listening", "addr", *addr, "api_root", "http://localhost"+*addr+"/api")
		srvErrCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	logger.Info("server exited cleanly")
}
