package main

import (
	"context"
	"os"
	"os/signal"
	"registrar/internal/app/consumers"
	"registrar/internal/app/deps"
	"registrar/internal/app/services"
	"syscall"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	defer shutdownDeps()

	services := services.InitServices(deps)
	shutdownConsumers := consumers.InitConsumers(deps, services)
	defer shutdownConsumers()

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	deps.Logger.Info(context.Background(), "Mailer is stopping gracefully.")
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
