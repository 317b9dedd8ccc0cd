package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spatialreq/internal/config"
	"spatialreq/internal/infrastructure/logger"
	"spatialreq/internal/request"
	"spatialreq/internal/transport"
)

func main() {
	var (
		port    = flag.String("port", "", "server port (overrides config)")
		invertY = flag.Bool("invert-y", false, "flip the Y axis of incoming point clouds")
	)
	flag.Parse()

	cfg := config.Load()
	if *port != "" {
		cfg.Port = *port
	}

	log := logger.Setup(cfg.LogLevel)
	log.Info().Str("port", cfg.Port).Bool("invert_y", *invertY).Msg("starting spatial request planner server")

	var opts []transport.ServerOption
	opts = append(opts, transport.WithInvertY(*invertY))

	if cfg.JWTSecret != "" {
		opts = append(opts, transport.WithTokenVerifier(transport.NewTokenVerifier(cfg.JWTSecret)))
		log.Info().Msg("bearer-token auth enabled on init messages")
	}

	if cfg.OpenAIKey != "" {
		phraser := request.NewOpenAIPhraser(cfg.OpenAIKey, "gpt-4o-mini", request.TemplatePhraser{})
		opts = append(opts, transport.WithPhraser(phraser))
		log.Info().Msg("OpenAI request phrasing enabled")
	}

	var audit *transport.AuditLog
	if cfg.DatabaseDSN != "" {
		a, err := transport.NewAuditLog(cfg.DatabaseDSN, log)
		if err != nil {
			log.Error().Err(err).Msg("failed to connect audit log database; continuing without it")
		} else {
			audit = a
			opts = append(opts, transport.WithAuditLog(audit))
			log.Info().Msg("command audit logging enabled")
		}
	}

	srv := transport.NewServer(log, opts...)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.ServeHTTP)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("address", httpServer.Addr).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}
	if audit != nil {
		if err := audit.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close audit log")
		}
	}

	log.Info().Msg("server exited gracefully")
}
