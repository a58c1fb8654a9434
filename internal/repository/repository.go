package repository

import (
	"context"
	"errors"

	"github.com/ghaggin/portal/internal/config"
	"github.com/ghaggin/portal/internal/model"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")

	errUnknownKind = errors.New("unknown repository kind")
)

type Repository interface {
	GetUserByName(ctx context.Context, name string) (*model.User, error)
	AddUser(ctx context.Context, user *model.User) error
}

type Params struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Log    *zap.Logger
}

// New picks the implementation named by api.repository.kind.
func New(p Params) (Repository, error) {
	switch p.Config.API.Repository.Kind {
	case config.RepositoryJSON, "":
		return NewJSON(p)
	case config.RepositoryPostgres:
		return NewPostgres(p)
	default:
		return nil, errUnknownKind
	}
}
