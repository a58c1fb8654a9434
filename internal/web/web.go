package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ghaggin/portal/internal/apiclient"
	"github.com/ghaggin/portal/internal/config"
	"github.com/ghaggin/portal/internal/middleware"
	"github.com/ghaggin/portal/internal/template"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Server is the browser facing front end.
type Server struct {
	log    *zap.Logger
	server *http.Server
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Config   *config.Config
	Sessions *middleware.SessionManager
	Client   *apiclient.Client
}

func New(p Params) (*Server, error) {
	return &Server{
		log: p.Log,
		server: &http.Server{
			Addr:    fmt.Sprintf("localhost:%d", p.Config.Web.Port),
			Handler: NewRouter(p.Log, p.Sessions, p.Client),
		},
	}, nil
}

// NewRouter maps paths to pages. /main is registered once and unguarded;
// there is no protected route.
func NewRouter(log *zap.Logger, sessions *middleware.SessionManager, client API) http.Handler {
	pg := &pages{
		log:      log,
		sessions: sessions,
		api:      client,
	}

	root := chi.NewRouter()
	root.Use(chimw.RequestID)
	root.Use(middleware.RequestLogger(log))
	root.Use(chimw.Recoverer)
	root.Use(sessions.Wrap)

	root.Get("/", pg.welcome)
	root.Get("/login", pg.loginForm)
	root.Post("/login", pg.login)
	root.Get("/signup", pg.signupForm)
	root.Post("/signup", pg.signup)
	root.Get("/main", pg.main)

	root.Handle("/static/*", http.StripPrefix("/static", template.Static()))

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
	s.log.Info("starting web server", zap.String("addr", s.server.Addr))
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error starting server", zap.Error(err))
		}
	}()
	return nil
}
