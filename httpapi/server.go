// Package httpapi exposes the import endpoint and the dashboard reads over
// HTTP. Routing and response conventions only; all reconciliation logic lives
// in the importer package.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"fscportal/auth"
	"fscportal/db"
)

type Server struct {
	pool     *pgxpool.Pool
	q        *db.Queries
	verifier auth.Verifier
	log      *logrus.Logger
	origins  []string
}

func NewServer(pool *pgxpool.Pool, verifier auth.Verifier, log *logrus.Logger, origins []string) *Server {
	return &Server{
		pool:     pool,
		q:        db.New(pool),
		verifier: verifier,
		log:      log,
		origins:  origins,
	}
}

// Handler returns the full middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/imports/simplepractice", s.requireAuth(s.handleImport)).Methods(http.MethodPost)
	r.HandleFunc("/api/imports/history", s.handleImportHistory).Methods(http.MethodGet)
	r.HandleFunc("/api/imports/test-connection", s.handleTestConnection).Methods(http.MethodGet)
	r.HandleFunc("/api/sessions", s.handleSessions).Methods(http.MethodGet)
	r.HandleFunc("/api/user/profile", s.requireAuth(s.handleProfile)).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
