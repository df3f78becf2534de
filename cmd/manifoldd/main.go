// Command manifoldd runs a scene at a fixed tick rate and streams its state
// to websocket clients.
//
//	manifoldd -config manifoldd.yaml
//
// Without a config file the built-in three-chart cycle is served on :8080/ws.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/metatopia/config"
	"github.com/katalvlaran/metatopia/manifold"
	"github.com/katalvlaran/metatopia/scene"
	"github.com/katalvlaran/metatopia/stream"
)

const shutdownTimeout = 5 * time.Second

func main() {
	path := flag.String("config", "manifoldd.yaml", "path of the YAML settings file")
	flag.Parse()

	if err := run(*path); err != nil {
		fmt.Fprintln(os.Stderr, "manifoldd:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	manifold.SetLogger(log)

	sc := scene.Cycle()
	if cfg.Simulation.Scene != "" {
		if sc, err = scene.Load(cfg.Simulation.Scene); err != nil {
			return err
		}
	}
	built, err := sc.Build(manifoldOptions(cfg.Simulation)...)
	if err != nil {
		return err
	}

	sim := newSimulation(built, cfg.Simulation.TickRate)
	hub := stream.NewHub(stream.WithCommandHandler(sim.command))
	mux := http.NewServeMux()
	mux.Handle(cfg.Server.Path, hub)
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sim.run(ctx, hub, cfg.Server.BroadcastInterval)
	})
	g.Go(func() error {
		log.Info("manifoldd: listening", "addr", cfg.Server.Addr, "path", cfg.Server.Path,
			"charts", built.Manifold.ChartCount(), "portals", built.Manifold.PortalCount())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		hub.Close()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	err = g.Wait()
	log.Info("manifoldd: stopped", "ticks", sim.ticks())
	return err
}

func manifoldOptions(s config.SimulationSettings) []manifold.Option {
	opts := []manifold.Option{manifold.WithRouteDepth(s.RouteDepth)}
	if s.HitPolicy == "closest" {
		opts = append(opts, manifold.WithHitPolicy(manifold.ClosestHit))
	}
	return opts
}
