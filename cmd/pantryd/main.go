// PantryKit daemon - the background service behind the kitchen dashboard
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pantrykit/pantrykit/internal/actions"
	"github.com/pantrykit/pantrykit/internal/api"
	"github.com/pantrykit/pantrykit/internal/config"
	"github.com/pantrykit/pantrykit/internal/festivals"
	"github.com/pantrykit/pantrykit/internal/logging"
	"github.com/pantrykit/pantrykit/internal/reminders"
	"github.com/pantrykit/pantrykit/internal/status"
	"github.com/pantrykit/pantrykit/internal/storage"
)

var (
	configPath string
	dataDir    string
	port       int
	debug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pantryd",
		Short: "PantryKit daemon - kitchen inventory, reminders and voice commands",
		RunE:  runDaemon,
	}

	home, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(home, ".pantrykit")

	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", defaultDataDir, "Data directory")
	rootCmd.Flags().IntVar(&port, "port", 0, "HTTP server port (overrides config)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if debug || cfg.Features.DebugMode {
		logging.SetLevel(logging.DEBUG)
	}

	log := logging.New("pantryd")

	// Open database
	dbPath := filepath.Join(cfg.DataDir, "pantrykit.db")
	db, err := storage.Open(storage.Config{Path: dbPath})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Info("database ready at %s", dbPath)

	// Status engine
	engine := status.NewEngine(status.Config{
		GlobalLowThreshold:   cfg.Inventory.GlobalLowThreshold,
		ExpiringWindowDays:   cfg.Inventory.ExpiringWindowDays,
		PerishableWindowDays: cfg.Inventory.PerishableWindowDays,
	})

	// Stores and dispatcher
	itemStore := storage.NewItemStore(db)
	shoppingStore := storage.NewShoppingStore(db)
	reminderStore := storage.NewReminderStore(db)
	usageStore := storage.NewUsageStore(db)

	dispatcherCfg := actions.DefaultConfig()
	dispatcherCfg.MinConfidence = cfg.Reminders.MinVoiceConfidence
	dispatcher := actions.NewDispatcher(itemStore, shoppingStore, reminderStore,
		usageStore, engine, dispatcherCfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reminder sweep
	var reminderService *reminders.Service
	if cfg.Reminders.Enabled {
		reminderService = reminders.NewService(itemStore, reminderStore, engine,
			reminders.ServiceConfig{
				SweepInterval:   time.Duration(cfg.Reminders.SweepIntervalMins) * time.Minute,
				QuietHoursStart: cfg.Reminders.QuietHoursStart,
				QuietHoursEnd:   cfg.Reminders.QuietHoursEnd,
				Retention:       time.Duration(cfg.Reminders.RetentionDays) * 24 * time.Hour,
			})
		if err := reminderService.Start(ctx); err != nil {
			log.Warn("failed to start reminder service: %v", err)
		}
	}

	// Festivals
	var festivalService *festivals.Service
	if cfg.Features.EnableFestivals {
		festivalService = festivals.NewService()
	}

	// API server
	server := api.New(api.Config{
		Port:            cfg.Server.Port,
		DB:              db,
		Engine:          engine,
		Dispatcher:      dispatcher,
		ReminderService: reminderService,
		FestivalService: festivalService,
	})

	// Handle shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		log.Info("shutting down")
		if reminderService != nil {
			reminderService.Stop()
		}
		server.Stop(context.Background())
		cancel()
	}()

	log.Info("listening on http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	return server.Start()
}
