package main

import (
	"campanion/app/config"
	"campanion/app/server/httpapi"
	"campanion/app/server/mcpsrv"
	"campanion/app/service/agent"
	"campanion/app/service/engine"
	"campanion/app/service/memory"
	"campanion/app/service/queue"
	"campanion/app/service/repl"
	"campanion/app/util/mylog"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, memory.New)
	do.Provide(di, agent.New)
	do.Provide(di, queue.New)
	do.Provide(di, engine.New)
	do.Provide(di, repl.New)
	do.Provide(di, httpapi.New)
	do.Provide(di, mcpsrv.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	group, groupCtx := errgroup.WithContext(appCtx)

	if !cfg.HTTP.Disabled {
		group.Go(func() error {
			return do.MustInvoke[*httpapi.Server](di).Run(groupCtx)
		})
	}

	if cfg.MCP.Enabled {
		group.Go(func() error {
			return do.MustInvoke[*mcpsrv.Server](di).Run(groupCtx)
		})
	} else {
		group.Go(func() error {
			do.MustInvoke[*engine.Service](di).Run(groupCtx)
			return nil
		})

		group.Go(func() error {
			defer cancel()
			return do.MustInvoke[*repl.Service](di).Run(groupCtx)
		})
	}

	if err = group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("service failed: %v", err)
	}
}
