package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/nutri-api/internal/app"
	"github.com/jwalitptl/nutri-api/internal/config"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/pkg/auth"
	"github.com/jwalitptl/nutri-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configDir string
	root := &cobra.Command{
		Use:           "nutri-api",
		Short:         "Patient management API for nutritionists",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configDir, "config", "", "directory holding config.yaml")

	load := func() (*config.Config, zerolog.Logger, error) {
		var paths []string
		if configDir != "" {
			paths = append(paths, configDir)
		}
		cfg, err := config.LoadConfig(paths...)
		if err != nil {
			log.Error().Err(err).Msg("failed to load configuration")
			return nil, log.Logger, err
		}
		l := logger.Init(&logger.Config{
			Level:  logger.ParseLevel(cfg.Log.Level),
			Pretty: cfg.Log.Pretty,
		})
		return cfg, l, nil
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Migrate the schema and serve the HTTP API",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, l, err := load()
				if err != nil {
					return err
				}
				return serve(cmd.Context(), cfg, l)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, l, err := load()
				if err != nil {
					return err
				}
				return withApp(cmd.Context(), cfg, l, func(a *app.App) error {
					if err := a.Migrate(cmd.Context()); err != nil {
						return err
					}
					l.Info().Str("backend", cfg.Database.Backend).Msg("schema migrated")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert a sample patient",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, l, err := load()
				if err != nil {
					return err
				}
				return withApp(cmd.Context(), cfg, l, func(a *app.App) error {
					return seed(cmd.Context(), a)
				})
			},
		},
	)
	return root
}

func withApp(ctx context.Context, cfg *config.Config, l zerolog.Logger, fn func(*app.App) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.Open(ctx, cfg, app.Options{Logger: l, Registry: prometheus.NewRegistry()})
	if err != nil {
		l.Error().Err(err).Msg("failed to open application")
		return err
	}
	defer a.Close()
	if err := fn(a); err != nil {
		l.Error().Err(err).Msg("command failed")
		return err
	}
	return nil
}

func serve(ctx context.Context, cfg *config.Config, l zerolog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := app.Open(ctx, cfg, app.Options{Logger: l, Registry: registry})
	if err != nil {
		l.Error().Err(err).Msg("failed to initialize application")
		return err
	}
	defer a.Close()

	if err := a.Migrate(ctx); err != nil {
		l.Error().Err(err).Msg("failed to migrate database")
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.Router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info().
			Int("port", cfg.Server.Port).
			Str("backend", cfg.Database.Backend).
			Str("tenancy", cfg.Tenancy.Mode).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			l.Error().Err(err).Msg("failed to start server")
			return err
		}
	case <-ctx.Done():
	}

	l.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("server forced to shutdown")
		return err
	}
	l.Info().Msg("server exited properly")
	return nil
}

// seed inserts a sample patient. In multi tenancy it is owned by the
// nutritionist named in NUTRI_SEED_NUTRITIONIST_ID.
func seed(ctx context.Context, a *app.App) error {
	if err := a.Migrate(ctx); err != nil {
		return err
	}
	if a.Config.Tenancy.Mode == config.TenancyMulti {
		id, err := seedOwner()
		if err != nil {
			return err
		}
		ctx = auth.WithIdentity(ctx, id)
	}

	name, weight, height := "Sample Patient", 65.5, 1.65
	resp := a.Patients.Create(ctx, &model.CreatePatientRequest{
		FullName: name,
		Weight:   &weight,
		Height:   &height,
	})
	if !resp.OK() {
		return resp.Err()
	}
	p := resp.Value()
	a.Logger.Info().Str("patient_id", p.ID.String()).Interface("bmi", p.BMI).Msg("seeded sample patient")
	return nil
}
