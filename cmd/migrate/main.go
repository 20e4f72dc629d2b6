package main

import (
	"fmt"
	"os"
	"registrar/migrations"

	"github.com/caarlos0/env/v6"
)

type config struct {
	PostgresqlURL string `env:"POSTGRESQL_URL,required,notEmpty"`
}

func main() {
	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := migrations.Up(cfg.PostgresqlURL); err != nil {
		fmt.Fprintf(os.Stderr, "could not apply migrations, error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migrations applied.")
}
