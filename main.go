package main

import (
	"flag"

	"github.com/ghaggin/portal/internal/api"
	"github.com/ghaggin/portal/internal/config"
	"github.com/ghaggin/portal/internal/web"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	var mode = flag.String("mode", "web", "either web or api")
	var configPath = flag.String("config", "", "path to a yaml config file")
	flag.Parse()

	newPath := func() config.Path {
		return config.Path(*configPath)
	}

	deps := fx.Options(
		fx.Provide(
			zap.NewDevelopment,
			config.New,
			newPath,
		),
	)

	var app *fx.App
	if *mode == "web" {
		app = fx.New(
			deps,
			web.Module,
			fx.Invoke(web.RegisterHooks),
		)
	} else if *mode == "api" {
		app = fx.New(
			deps,
			api.Module,
			fx.Invoke(api.RegisterHooks),
		)
	} else {
		panic("unrecognized mode")
	}

	app.Run()
}
