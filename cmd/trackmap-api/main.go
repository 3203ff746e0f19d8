// README: Entry point; loads config, wires the tracker and starts the HTTP server.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trackmap/internal/config"
	"trackmap/internal/httpapi"
	"trackmap/internal/infra"
	"trackmap/internal/publish"
	"trackmap/internal/routing"
	"trackmap/internal/tracker"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	routeClient := routing.NewClient(cfg.OSRM.BaseURL, time.Duration(cfg.OSRM.TimeoutSeconds)*time.Second)

	interval := time.Duration(cfg.Refresh.IntervalSeconds) * time.Second

	var publisher tracker.Publisher
	if cfg.Redis.Addr != "" {
		redisClient := infra.NewRedis(cfg.Redis.Addr)
		publisher = publish.NewRedisPublisher(redisClient, cfg.Redis.Channel, 2*interval)
	}

	trk := tracker.New(routeClient, publisher, interval)
	trk.Start(trackingInputs(cfg))
	defer trk.Stop()

	// Editing the config file re-seeds the tracker with fresh inputs.
	config.Watch(*configPath, func(fresh *config.Config) {
		log.Printf("config reloaded, restarting tracker")
		trk.Update(trackingInputs(fresh))
	})

	api := httpapi.NewServer(trk)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: api.Routes()}

	go func() {
		<-ctx.Done()
		trk.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("trackmap listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func trackingInputs(cfg *config.Config) tracker.Inputs {
	return tracker.Inputs{
		Start:     cfg.Tracking.Start,
		End:       cfg.Tracking.End,
		Vehicle:   cfg.Tracking.Vehicle,
		IsRouting: cfg.Tracking.IsRouting,
	}
}
