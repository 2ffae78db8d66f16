package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thegame/internal/app"
	"thegame/internal/app/onboarding"
	"thegame/internal/config"
	"thegame/internal/log"
	"thegame/internal/ports"
	"thegame/internal/ports/mongo"
	"thegame/internal/ports/natsbus"
	"thegame/internal/ports/ws"

	"github.com/arl/statsviz"
)

const shutdownTimeout = 5 * time.Second

// Run wires the optional integrations and serves until ctx is done or the
// process receives SIGINT or SIGTERM.
func Run(ctx context.Context, cfg *config.Config) error {
	var publisher ports.EventPublisher
	if cfg.Nats.URL != "" {
		p, err := natsbus.Connect(cfg.Nats.URL, cfg.Nats.SubjectPrefix, cfg.App.Name)
		if err != nil {
			return err
		}
		defer func() {
			if err := p.Close(); err != nil {
				log.Warn("nats close: %v", err)
			}
		}()
		publisher = p
		log.Info("publishing room events to %s under %q", cfg.Nats.URL, cfg.Nats.SubjectPrefix)
	}

	var archive ports.GameArchive
	if cfg.Mongo.URL != "" {
		a, err := mongo.Connect(ctx, mongo.Options{
			URL:         cfg.Mongo.URL,
			Database:    cfg.Mongo.Database,
			Collection:  cfg.Mongo.Collection,
			MaxPoolSize: cfg.Mongo.MaxPoolSize,
		})
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := a.Close(closeCtx); err != nil {
				log.Warn("mongodb close: %v", err)
			}
		}()
		archive = a
		log.Info("archiving games to %s.%s", cfg.Mongo.Database, cfg.Mongo.Collection)
	}

	svc := app.NewService(nil)
	registry := app.NewRegistry(svc)
	names := onboarding.NewService(nil, nil)
	hub := ws.NewHub(registry, svc, app.NewRelay(publisher, archive), ws.Options{
		ReadLimit:      cfg.Server.ReadLimit,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Namer:          names.FriendlyName,
	})

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.Handle("/rooms", hub.RoomsHandler())
	mux.HandleFunc("/health", healthHandler)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case s := <-sigCh:
		log.Info("received %s, shutting down", s)
	case <-ctx.Done():
		log.Info("context done, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := server.Shutdown(shutdownCtx)
	// Hijacked websocket connections are not tracked by Shutdown.
	hub.Close()
	log.Info("server stopped, %d rooms were open", registry.Len())
	return err
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func serveMetrics(addr string) error {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return err
	}
	return http.ListenAndServe(addr, mux)
}
