package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Build information injected via ldflags at build time.
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	home, _ := os.UserHomeDir() // empty when $HOME is unset; setup reports it
	code := run(ctx, home, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
