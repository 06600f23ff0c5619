package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"garmentloop-backend/internal/config"
	"garmentloop-backend/internal/jobs"
	"garmentloop-backend/internal/logger"
	"garmentloop-backend/internal/repository/postgres"
	"garmentloop-backend/internal/scheduler"
	"garmentloop-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'mark-overdue-rentals', 'send-overdue-reminders', 'all-nightly')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Garmentloop cronjob runner...", "log_level", cfg.Log.Level)

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	jobRunner := jobs.NewJobRunner(db, store, emailSvc, cfg)

	if *runOnce != "" {
		switch *runOnce {
		case "mark-overdue-rentals":
			jobRunner.MarkOverdueRentals()
		case "send-overdue-reminders":
			jobRunner.SendOverdueReminders()
		case "all-nightly":
			jobRunner.RunAllNightlyJobs()
		default:
			logger.Error("Unknown job name", "job", *runOnce)
			os.Exit(1)
		}
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	logger.Info("Shutting down", "signal", s.String())
}
