package web

import (
	"github.com/ghaggin/portal/internal/apiclient"
	"github.com/ghaggin/portal/internal/middleware"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		New,
		apiclient.New,
		middleware.NewSessionManager,
	),
)
