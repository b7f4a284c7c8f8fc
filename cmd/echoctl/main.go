package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/Conceptual-Machines/echo-api/internal/cli"
	"github.com/joho/godotenv"
)

// Build flags
var version = ""
var commit = ""
var date = ""

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cmd := cli.New(version, commit, date)
	if err := cmd.ParseAndRun(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
