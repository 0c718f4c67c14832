package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/simp-lee/rentsearch/internal/config"
	"github.com/simp-lee/rentsearch/internal/domain"
	"github.com/simp-lee/rentsearch/internal/module/listing"
	"github.com/simp-lee/rentsearch/internal/seed"
)

func seedCmd(configPath *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load listings into the configured database",
		Long: "Load listings into the configured database. Listings are read from --file " +
			"or, when omitted, from the built-in dataset. Existing listings with the same id are updated.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			n, err := runSeed(cmd, cfg, file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d listings\n", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML listings file (default: built-in dataset)")
	return cmd
}

func runSeed(cmd *cobra.Command, cfg *config.Config, file string) (int, error) {
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return 0, fmt.Errorf("setup logger: %w", err)
	}
	defer log.Close()

	listings, err := seed.Load(file)
	if err != nil {
		return 0, err
	}

	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return 0, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			log.Error("database close error", slog.Any("error", err))
		}
	}()

	if err := config.AutoMigrate(db, log.Logger, &domain.Listing{}); err != nil {
		return 0, fmt.Errorf("auto migrate: %w", err)
	}
	if err := listing.Seed(cmd.Context(), db, listings); err != nil {
		return 0, fmt.Errorf("seed listings: %w", err)
	}

	log.Info("listings seeded", slog.Int("count", len(listings)), slog.String("source", sourceName(file)))
	return len(listings), nil
}

func sourceName(file string) string {
	if file == "" {
		return "built-in"
	}
	return file
}
