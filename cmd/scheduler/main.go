package main

import (
	"context"
	"os"
	"os/signal"
	"registrar/internal/app/deps"
	"registrar/internal/app/services"
	"registrar/internal/core/domain/logging"
	deleteexpiredusers "registrar/internal/core/services/delete_expired_users"
	notifyalmostexpired "registrar/internal/core/services/notify_almost_expired"
	"syscall"
	"time"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	ticker := time.NewTicker(deps.Config.SchedulerPeriod)
	defer ticker.Stop()

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(
		context.Background(),
		"Starting periodic signup maintenance.",
		logging.Entry("periodMinutes", deps.Config.SchedulerPeriod.Minutes()),
	)

loop:
	for {
		select {
		case <-stopCh:
			log.Info(context.Background(), "Stopping periodic signup maintenance.")
			break loop
		case <-ticker.C:
			ctx := context.Background()
			log.Info(ctx, "Launching almost expired signups notification.")
			notified, err := services.NotifyAlmostExpired.Run(ctx, notifyalmostexpired.Input{})
			if err != nil {
				log.Error(ctx, "Notification service returned an error.", logging.Entry("err", err))
			} else {
				log.Info(ctx, "Almost expired signups notified.", logging.Entry("count", len(notified.Notified)))
			}

			log.Info(ctx, "Launching expired users cleanup.")
			deleted, err := services.DeleteExpiredUsers.Run(ctx, deleteexpiredusers.Input{})
			if err != nil {
				log.Error(ctx, "Cleanup service returned an error.", logging.Entry("err", err))
			} else {
				log.Info(ctx, "Expired users deleted.", logging.Entry("count", len(deleted.Deleted)))
			}
		}
	}
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
