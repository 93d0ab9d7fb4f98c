package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"sweepd/internal/config"
	"sweepd/internal/exitcodes"
	"sweepd/internal/journal"
	"sweepd/internal/logging"
	"sweepd/internal/metrics"
	"sweepd/internal/routine"
	"sweepd/internal/safety"
	"sweepd/internal/scheduler"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "/etc/sweepd/config.yaml", "Path to configuration file")
	dryRun := flag.Bool("dry-run", false, "Perform dry run without removing anything")
	once := flag.Bool("once", false, "Run one pass of every routine and exit (no loop)")
	noJournal := flag.Bool("no-journal", false, "Disable the removal journal")
	flag.Parse()

	// Initialize logger
	logger := logging.New()

	logger.Println("sweepd starting...")
	logger.Printf("Config file: %s", *configPath)
	if *dryRun {
		logger.Println("DRY RUN MODE: Nothing will be removed")
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Printf("ERROR: Failed to load config: %v", err)
		os.Exit(exitcodes.InvalidConfig)
	}

	// Refuse routines rooted at protected system paths
	validator := safety.NewValidator(nil)
	for _, rc := range cfg.Routines {
		if err := validator.ValidateRoutineRoot(rc.Directory); err != nil {
			logger.Printf("ERROR: Routine directory %s rejected: %v", rc.Directory, err)
			os.Exit(exitcodes.SafetyViolation)
		}
	}

	routines, err := routine.FromConfig(cfg)
	if err != nil {
		logger.Printf("ERROR: Invalid routine configuration: %v", err)
		os.Exit(exitcodes.InvalidConfig)
	}
	logger.Printf("Loaded %d routine(s)", len(routines))

	// Initialize metrics (Prometheus)
	metrics.Init()

	// SIGUSR1 and POST /trigger force an immediate pass on all routines;
	// the channel must be in place before the HTTP handler can read it
	trigger := make(chan os.Signal, 1)
	signal.Notify(trigger, syscall.SIGUSR1)
	metrics.SetTriggerChannel(trigger)

	if cfg.Prometheus.Port > 0 {
		addr := cfg.PrometheusAddress()
		logger.Printf("Starting Prometheus metrics on %s", addr)
		metrics.StartServer(addr, logger)
	}

	// Open the removal journal
	var jr *journal.Journal
	if !*noJournal && cfg.DatabasePath != "" {
		logger.Printf("Opening removal journal: %s", cfg.DatabasePath)
		jr, err = journal.Open(cfg.DatabasePath)
		if err != nil {
			logger.Printf("ERROR: Failed to open journal: %v", err)
			os.Exit(exitcodes.RuntimeError)
		}
		defer func() {
			if err := jr.Close(); err != nil {
				logger.Printf("ERROR: Failed to close journal: %v", err)
			}
		}()

		// journal rows follow the same retention as the logs
		if pruned, err := jr.PruneOlderThan(cfg.Logging.RotationDays); err != nil {
			logger.Printf("WARN: Failed to prune journal: %v", err)
		} else if pruned > 0 {
			logger.Printf("Pruned %d journal rows older than %d days", pruned, cfg.Logging.RotationDays)
			if err := jr.Vacuum(); err != nil {
				logger.Printf("WARN: Failed to vacuum journal: %v", err)
			}
		}
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	sweeper := routine.NewSweeper(logger, *dryRun, jr)
	sched := scheduler.New(sweeper, logger, trigger)

	logger.Println("Starting sweep scheduler...")
	if *once {
		if err := sched.RunOnce(ctx, routines); err != nil {
			logger.Printf("ERROR: Pass failed: %v", err)
			os.Exit(exitcodes.RuntimeError)
		}
		logger.Println("Pass completed successfully")
	} else {
		if err := sched.Run(ctx, routines); err != nil && err != context.Canceled {
			logger.Printf("ERROR: Scheduler failed: %v", err)
			os.Exit(exitcodes.RuntimeError)
		}
	}

	logger.Println("sweepd stopped")
}
