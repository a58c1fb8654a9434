package middleware

import (
	"context"
	"encoding/gob"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/ghaggin/portal/internal/config"
	"github.com/ghaggin/portal/internal/model"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	sessionKey = "session_key"
)

var (
	errSessionNotFound = errors.New("session not found")
)

// SessionManager keeps the api token for a browser. Nothing removes the
// token once it is stored; there is no logout.
type SessionManager struct {
	impl *scs.SessionManager
}

type SessionParams struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Log    *zap.Logger
}

func NewSessionManager(p SessionParams) (*SessionManager, error) {
	sm := newSessionManager(p.Config.Web.Session)

	if p.Config.Web.Session.Store == config.SessionStoreRedis {
		store := NewRedisStore(p.Config.Web.Session.Redis)
		sm.impl.Store = store

		p.LC.Append(fx.Hook{
			OnStart: store.Ping,
			OnStop: func(_ context.Context) error {
				return store.Close()
			},
		})
		p.Log.Info("using redis session store", zap.String("addr", p.Config.Web.Session.Redis.Addr))
	}

	return sm, nil
}

func newSessionManager(c config.Session) *SessionManager {
	gob.Register(&model.Session{})

	sm := &SessionManager{}
	sm.impl = scs.New()
	sm.impl.Lifetime = c.Lifetime
	sm.impl.Cookie.Name = c.CookieName
	sm.impl.Cookie.Persist = true
	sm.impl.Cookie.SameSite = http.SameSiteLaxMode

	return sm
}

func (s *SessionManager) Wrap(next http.Handler) http.Handler {
	return s.impl.LoadAndSave(next)
}

func (s *SessionManager) Get(ctx context.Context) (*model.Session, error) {
	session, ok := s.impl.Get(ctx, sessionKey).(*model.Session)
	if !ok || session.Token == "" {
		return nil, errSessionNotFound
	}

	return session, nil
}

func (s *SessionManager) Authenticated(ctx context.Context) bool {
	_, err := s.Get(ctx)
	return err == nil
}

// SetAuthenticated stores the token as is; it is never inspected.
func (s *SessionManager) SetAuthenticated(ctx context.Context, token, username string) error {
	session, ok := s.impl.Get(ctx, sessionKey).(*model.Session)
	if !ok {
		session = &model.Session{}
	}

	session.Token = token
	session.Username = username

	s.impl.Put(ctx, sessionKey, session)
	return s.impl.RenewToken(ctx)
}
