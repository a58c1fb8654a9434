// Package api serves the REST endpoints the front end calls.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ghaggin/portal/internal/config"
	"github.com/ghaggin/portal/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Server struct {
	log    *zap.Logger
	server *http.Server
}

type Params struct {
	fx.In

	Log        *zap.Logger
	Config     *config.Config
	Controller *Controller
	Tokens     *TokenIssuer
}

func New(p Params) (*Server, error) {
	return &Server{
		log: p.Log,
		server: &http.Server{
			Addr:    fmt.Sprintf("localhost:%d", p.Config.API.Port),
			Handler: NewRouter(p),
		},
	}, nil
}

func NewRouter(p Params) http.Handler {
	h := &handlers{
		log:    p.Log,
		ctrl:   p.Controller,
		tokens: p.Tokens,
	}

	root := chi.NewRouter()
	root.Use(chimw.RequestID)
	root.Use(middleware.RequestLogger(p.Log))
	root.Use(chimw.Recoverer)
	root.Use(cors.Handler(cors.Options{
		AllowedOrigins: p.Config.API.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	root.Route("/api", func(r chi.Router) {
		r.Get("/users/{username}", h.getUser)
		r.Post("/auth/login", h.login)
		r.Post("/auth/signup", h.signup)
	})

	return root
}

// RegisterHooks should be invoked by fx
func RegisterHooks(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.server.Shutdown,
	})
}

func (s *Server) Start(_ context.Context) error {
	s.log.Info("starting api server", zap.String("addr", s.server.Addr))
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error starting server", zap.Error(err))
		}
	}()
	return nil
}
