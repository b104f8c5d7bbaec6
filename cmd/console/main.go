package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/django/v3"
	cfs "github.com/goliatone/go-composite-fs"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	mflash "github.com/goliatone/go-router/middleware/flash"

	"github.com/goliatone/campaign-console/internal/apiclient"
	"github.com/goliatone/campaign-console/internal/config"
	"github.com/goliatone/campaign-console/internal/credstore"
	"github.com/goliatone/campaign-console/internal/gate"
	"github.com/goliatone/campaign-console/internal/web"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("console"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := config.Load()
	if err != nil {
		lgr.Error("unable to load configuration", "error", err)
		os.Exit(1)
	}

	if !cfg.IsProduction() {
		fmt.Println(print.MaybeHighlightJSON(cfg))
	}

	api := apiclient.New(cfg.API.BaseURL,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithLogger(lgr.GetLogger("api")),
	)

	store := credstore.NewCookieStore(cfg.Session)

	accessGate := gate.New(api,
		gate.WithLogger(lgr.GetLogger("gate")),
		gate.WithFailurePolicy(gate.FailOpen),
	)

	// Embedded templates with a disk override for local template tweaks
	// without a rebuild.
	templates := cfs.NewCompositeFS(os.DirFS("internal/web/views"), web.TemplatesFS())
	engine := django.NewFileSystem(http.FS(templates), ".html")

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			PassLocalsToViews: true,
			Views:             engine,
		}))
	})

	srv.Router().WithLogger(lgr.GetLogger("router"))
	srv.Router().Use(mflash.New(mflash.ConfigDefault))

	srv.Router().Static("/public", ".", router.Static{
		FS:   web.PublicFS(),
		Root: ".",
	})

	web.RegisterRoutes(srv.Router(), web.Deps{
		Logger: lgr.GetLogger("web"),
		API:    api,
		Store:  store,
		Gate:   accessGate,
	})

	lgr.Info("console listening", "address", cfg.Server.Address, "backend", cfg.API.BaseURL)

	srv.Serve(cfg.Server.Address)

	waitExitSignal()
}

func waitExitSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
