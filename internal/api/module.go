package api

import (
	"github.com/ghaggin/portal/internal/repository"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		New,
		NewController,
		NewTokenIssuer,
		repository.New,
	),
)
