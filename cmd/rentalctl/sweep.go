package main

import (
	"encoding/json"
	"fmt"

	appbooking "github.com/rentals/backend/internal/application/booking"
	appcontract "github.com/rentals/backend/internal/application/contract"
	"github.com/rentals/backend/internal/infrastructure/logger"
	"github.com/rentals/backend/internal/infrastructure/persistence"
	"github.com/rentals/backend/internal/infrastructure/scheduler"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func sweepCmd() *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Complete elapsed visits and expire ended contracts once",
		Long: "Runs a single lifecycle sweep: PENDING or CONFIRMED bookings whose visit ended\n" +
			"more than scheduler.booking_grace ago become COMPLETED, and ACTIVE contracts\n" +
			"past their end date become EXPIRED.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync(log)
			}()

			gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel), cfg.Database.SlowThreshold)
			db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.Error("Error closing database", zap.Error(err))
				}
			}()

			propertyRepo := persistence.NewGormPropertyRepository(db.DB)
			bookingRepo := persistence.NewGormBookingRepository(db.DB)
			bookings := appbooking.NewBookingService(bookingRepo, propertyRepo,
				persistence.NewGormTransactionScope(db.DB), log,
				appbooking.WithLocation(cfg.App.Location()),
			)
			contracts := appcontract.NewContractService(
				persistence.NewGormContractRepository(db.DB),
				propertyRepo,
				persistence.NewGormDocumentRepository(db.DB),
				appcontract.ActivationGate{
					RequiredCategories: cfg.Documents.RequiredCategories,
					Enforce:            cfg.Documents.EnforceOnActivation,
				},
				log,
			)

			schedCfg := cfg.Scheduler
			if batchSize > 0 {
				schedCfg.BatchSize = batchSize
			}
			sweeper, err := scheduler.NewLifecycleSweeper(bookings, contracts, schedCfg, log)
			if err != nil {
				return err
			}

			result, err := sweeper.RunOnce(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Maximum rows per sweep half (defaults to scheduler.batch_size)")
	return cmd
}
