package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/roofsolar/planner/internal/logging"
	intOtel "github.com/roofsolar/planner/internal/otel"
)

// BuildDate and Version can be set at build time via ldflags
var (
	Version   string = "0.1.0"
	BuildDate string = "unknown"

	AppName string = "roofsolar"
)

// global variables
var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	SessionStartTime time.Time = time.Now()
)

const usage = `usage:
  roofsolar serve               start the HTTP planner
  roofsolar plan <plan.json>    replay clicks and export the layout
  roofsolar version             print the version`

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Println(usage)
		os.Exit(2)
	}

	command := strings.ToLower(args[0])
	if command == "version" {
		fmt.Printf("%s %s (built %s)\n", AppName, Version, BuildDate)
		return
	}
	if command != "serve" && command != "plan" {
		fmt.Println(usage)
		os.Exit(2)
	}

	configDir := os.Getenv("ROOFSOLAR_CONFIG_DIR")
	if configDir == "" {
		configDir = "."
	}
	closeAll, err := startup(configDir, setup)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	switch command {
	case "serve":
		err = runServe(ctx)
	case "plan":
		if len(args) < 2 {
			err = fmt.Errorf("no plan file provided")
			break
		}
		err = runPlan(ctx, args[1], os.Stdout)
	}
	stop()

	if err != nil {
		Logger.Error("Command failed", "command", command, "error", err)
	}
	closeAll()
	if err != nil {
		os.Exit(1)
	}
}

// startup runs setupFn and releases whatever it opened when it fails.
func startup(configDir string, setupFn func(string) (func(), error)) (func(), error) {
	closeAll, err := setupFn(configDir)
	if err != nil {
		if closeAll != nil {
			closeAll()
		}
		return nil, err
	}
	return closeAll, nil
}
