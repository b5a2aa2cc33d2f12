//go:build unix

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// watchForShutdown blocks waiting for a SIGINT or SIGTERM signal.
// When received, cancelFn will be called and this function will return.
// The context `ctx` being cancelled will also cause this function to return.
// SIGHUP reopens the log file so external rotation works.
func watchForShutdown(ctx context.Context, cancelFn context.CancelFunc) {
	defer cancelFn()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	for {
		select {
		case <-ctx.Done():
			// something else told us to exit
			return
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				log.Info("received SIGHUP, rotating logs")
				RotateLogs()
				continue
			}
			log.Infof("received signal '%s'", sig)
			return
		}
	}
}
