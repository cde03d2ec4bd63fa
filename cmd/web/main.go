package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stu-tools/rent-atlas/pkg/config"
	"github.com/stu-tools/rent-atlas/pkg/server"
	"github.com/stu-tools/rent-atlas/pkg/services/analysis"
	"github.com/stu-tools/rent-atlas/pkg/store"
	duckdbstore "github.com/stu-tools/rent-atlas/pkg/store/duckdb"
	"github.com/stu-tools/rent-atlas/pkg/store/memory"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the rent-atlas API server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a yaml config file (optional, env vars override)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	recordStore, err := buildStore(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	webAPI := server.New(server.Config{
		Addr:      addr,
		StaticDir: cfg.StaticDir,
		Dependencies: server.Dependencies{
			Store:    recordStore,
			Analysis: analysis.NewService(recordStore),
			Logger:   logger,
		},
	})

	return webAPI.Start()
}

func buildStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.Store, error) {
	switch cfg.Store.Driver {
	case "duckdb":
		db, err := duckdbstore.NewDB(duckdbstore.Settings{DbPath: cfg.Store.Path})
		if err != nil {
			return nil, fmt.Errorf("failed to open duckdb store: %w", err)
		}
		s, err := duckdbstore.New(db)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.Store.Path).Msg("using duckdb store")
		return s, nil
	default:
		s := memory.New()
		if cfg.Store.Seed {
			if err := memory.Seed(ctx, s); err != nil {
				return nil, fmt.Errorf("failed to seed store: %w", err)
			}
			logger.Info().Msg("seeded in-memory store with sample portfolio")
		}
		return s, nil
	}
}
