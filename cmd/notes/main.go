package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notes/internal/auth"
	"notes/internal/config"
	"notes/internal/db"
	httpx "notes/internal/http"
	"notes/internal/logger"
	"notes/internal/note"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Default().WithError(err).Fatal("load config")
	}
	logger.Init(cfg.LogLevel)
	log := logger.Default()

	store, err := db.Open(context.Background(), cfg)
	if err != nil {
		log.WithError(err).Fatalf("open %s store", cfg.Store)
	}
	log.Infof("connected to %s store", cfg.Store)

	var jwtSvc *auth.JWT
	if cfg.AuthMode == config.AuthToken {
		jwtSvc = auth.NewJWT(cfg.AuthTokenSecret, cfg.AuthTokenIssuer)
	} else {
		log.Warn("AUTH_MODE=trust: owner emails are taken from requests unverified")
	}

	r := httpx.NewRouter(cfg, &note.Service{Store: store}, jwtSvc)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("Notes server is running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen")
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("shutdown")
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.WithError(err).Warn("close store")
	}
}
