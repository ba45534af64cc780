// fscportal ingests SimplePractice CSV exports into a relational store of
// clients, providers, payers and billing sessions, and serves the dashboard
// read endpoints.
package main

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"fscportal/auth"
	"fscportal/db"
	"fscportal/httpapi"
)

func main() {
	log := logrus.New()

	cfg, err := loadConfig()
	if err != nil {
		log.WithError(err).Fatal("configuration error")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx := context.Background()

	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.WithError(err).Fatal("database unreachable")
	}

	var verifier auth.Verifier
	if cfg.AuthURL != "" {
		verifier = auth.NewHTTPVerifier(cfg.AuthURL)
	} else {
		verifier = auth.StaticVerifier{
			cfg.AuthToken: auth.User{ID: "00000000-0000-0000-0000-000000000001", Email: "operator@local"},
		}
	}

	server := httpapi.NewServer(pool, verifier, log, cfg.AllowedOrigins)

	log.WithField("addr", cfg.Addr).Info("listening")
	if err := http.ListenAndServe(cfg.Addr, server.Handler()); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
