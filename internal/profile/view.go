// Package profile is the user profile component shown on the main page.
package profile

import (
	"context"
	"sync"

	"github.com/ghaggin/portal/internal/model"
	"go.uber.org/zap"
)

type UserGetter interface {
	GetUser(ctx context.Context, username string) (*model.User, error)
}

// Profile is what the template renders.
type Profile struct {
	Loading  bool
	Username string
}

type View struct {
	client UserGetter
	log    *zap.Logger

	mu       sync.Mutex
	mounted  bool
	username string
	user     *model.User
}

func New(client UserGetter, log *zap.Logger) *View {
	return &View{client: client, log: log}
}

// SetUsername mounts the view for username, or switches it to a new one.
// A fetch is started only when the username changes. The returned channel
// is closed once that fetch resolves, or immediately if none was started.
//
// Fetches are neither deduplicated nor ordered: whichever succeeds last is
// what the view shows.
func (v *View) SetUsername(ctx context.Context, username string) <-chan struct{} {
	done := make(chan struct{})

	v.mu.Lock()
	if v.mounted && v.username == username {
		v.mu.Unlock()
		close(done)
		return done
	}
	v.mounted = true
	v.username = username
	v.mu.Unlock()

	go func() {
		defer close(done)

		u, err := v.client.GetUser(ctx, username)
		if err != nil {
			v.log.Error("error fetching user", zap.String("username", username), zap.Error(err))
			return
		}

		v.mu.Lock()
		v.user = u
		v.mu.Unlock()
	}()

	return done
}

func (v *View) Snapshot() Profile {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.user == nil {
		return Profile{Loading: true}
	}
	return Profile{Username: v.user.Username}
}
