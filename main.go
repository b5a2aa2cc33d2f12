package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	ginlogrus "github.com/toorop/gin-logrus"

	"worldclock/clock"
	"worldclock/config"
	"worldclock/external"
	"worldclock/geocode"
	"worldclock/http_handler"
	"worldclock/place"
	"worldclock/query"
	"worldclock/stats_collector"
	"worldclock/tz"
)

func main() {
	var wg sync.WaitGroup
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	wg.Add(1)
	go func() {
		defer wg.Done()
		watchForShutdown(ctx, cancelFn)
	}()

	cfg, err := config.ReadConfig()
	if err != nil {
		panic(err)
	}

	logLevel := log.InfoLevel
	if cfg.Logging.Debug {
		logLevel = log.DebugLevel
	}
	SetupLogger(logLevel, cfg.Logging.SaveLogs)

	// Both Sentry & Pyroscope are optional and off by default. Read more:
	// https://docs.sentry.io/platforms/go
	// https://pyroscope.io/docs/golang
	external.InitSentry()
	profiler := external.InitPyroscope()

	log.Infof("Worldclock starting")

	finder, err := tz.NewPolygonFinder()
	if err != nil {
		log.Fatalf("failed to load timezone boundaries: %s", err)
	}

	geocoder, err := geocode.NewNominatim(cfg.Geocoding.Url, cfg.Geocoding.UserAgent, &http.Client{})
	if err != nil {
		log.Fatalf("failed to setup geocoder: %s", err)
	}

	// Start the web server.
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// choose the statsCollector we will use.
	statsCollector := stats_collector.GetStatsCollector(cfg, r)

	zoneCache := place.NewZoneCache(cfg.Geocoding.CacheTtl)
	if zoneCache != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			zoneCache.Run(ctx)
		}()
	}

	resolver := place.NewResolver(place.ResolverConfig{
		Geocoder: geocoder,
		Finder:   finder,
		Timeout:  cfg.Geocoding.Timeout,
		Cache:    zoneCache,
		Stats:    statsCollector,
	})
	worldClock := clock.New(clock.Config{Stats: statsCollector})
	orchestrator := query.NewOrchestrator(resolver, worldClock, statsCollector)

	wg.Add(1)
	go func() {
		defer wg.Done()
		StartFixedZoneRefresher(ctx, orchestrator, statsCollector, cfg.Refresh.Interval)
	}()

	if cfg.Logging.Debug {
		r.Use(ginlogrus.Logger(log.StandardLogger()))
	} else {
		r.Use(gin.Recovery())
	}
	http_handler.NewHTTPHandler(orchestrator, cfg.ApiSecret).Register(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	wg.Add(1)
	go func() {
		defer cancelFn()
		defer wg.Done()

		log.Infof("Worldclock started, listening on port %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Failed to listen and start http server: %s", err)
		}
	}()

	// wait for shutdown to be signaled, either by watchForShutdown() or by the
	// http server failing to start.
	<-ctx.Done()

	log.Info("Starting shutdown...")

	// give open requests 5 seconds to finish before pulling the plug.
	shutdownCtx, shutdownCancelFn := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancelFn()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn("Graceful shutdown timed out, exiting.")
		} else {
			log.Errorf("Error during http server shutdown: %s", err)
		}
	}

	log.Info("http server is shutdown, waiting for other go routines to exit...")
	wg.Wait()

	if profiler != nil {
		_ = profiler.Stop()
	}
	external.FlushSentry(2 * time.Second)

	log.Info("Worldclock exiting!")
}
