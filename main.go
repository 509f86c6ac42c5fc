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

	"halal-directory/config"
	"halal-directory/handlers"
	"halal-directory/middleware"
	"halal-directory/routes"
	"halal-directory/seed"
	"halal-directory/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "halal-directory",
	Short: "Server-rendered directory of halal restaurants",
	Long: `halal-directory serves a browsable directory of halal restaurants,
their locations, cuisines and individual outlets.

Run without a subcommand to start the web server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample restaurants into the database",
	RunE:  runSeed,
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print the bcrypt hash to use as EDITOR_PASSWORD_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := middleware.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd, seedCmd, hashPasswordCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads config, logger, database and services.
func bootstrap() (config.Config, *zap.Logger, *services.Services, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, nil, nil, err
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return cfg, nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	db, err := config.OpenDB(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return cfg, nil, nil, nil, err
	}
	cleanup := func() {
		if err := config.CloseDB(db); err != nil {
			logger.Warn("closing database", zap.Error(err))
		}
		_ = logger.Sync()
	}
	return cfg, logger, services.New(db, logger), cleanup, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, svc, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	auth := middleware.NewEditorAuth(cfg.EditorPasswordHash, cfg.JWTSecret)
	h := handlers.New(svc, auth, logger.Named("http"))
	router, err := routes.NewRouter(h, routes.Options{
		Logger:      logger.Named("access"),
		Auth:        auth,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running",
			zap.String("addr", "http://localhost:"+cfg.Port),
			zap.Bool("editor_auth", auth.Enabled()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runSeed(cmd *cobra.Command, args []string) error {
	_, logger, svc, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := seed.Run(cmd.Context(), svc, logger.Named("seed"))
	if err != nil {
		return err
	}
	if res.Skipped {
		fmt.Fprintln(cmd.OutOrStdout(), "database already holds data; sample not loaded")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added %d locations, %d cuisines, %d restaurants, %d restaurant instances\n",
		res.Locations, res.Cuisines, res.Restaurants, res.Instances)
	return nil
}
