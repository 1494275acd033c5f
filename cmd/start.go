package cmd

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reservation-portal/core/loader"
	"reservation-portal/core/logger"
	"reservation-portal/core/middleware/rayid"
	"reservation-portal/core/session"
	"reservation-portal/feature/portal"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "reservation-portal/docs/swagger"
)

// @title Reservation Portal
// @version 1.0
// @description Upload a reservation export and download the generated summary and placards.
// @host localhost:8080
// @BasePath /

const sessionCleanupInterval = 15 * time.Minute

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the portal server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// 1. Configuration, logger, database and reports store
		env, err := setup(ctx)
		if err != nil {
			return err
		}
		logg := env.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Secrets are mandatory for serving
		if err := env.cfg.Validate(); err != nil {
			logg.Fatal("Invalid configuration", zap.Error(err))
		}
		srv := env.cfg.Server

		// 3. Sessions (persisted when a database is available)
		storeCfg := session.StoreConfig{Expiration: srv.SessionTTL()}
		if env.db != nil {
			storage, err := session.NewGormStorage(env.db)
			if err != nil {
				logg.Fatal("Failed to prepare session storage", zap.Error(err))
			}
			storage.StartCleanup(ctx, sessionCleanupInterval, logg)
			storeCfg.Storage = storage
		}
		sessions := session.NewManager(session.NewStore(storeCfg), srv.AuthorizedUUID)

		// 4. Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             srv.BodyLimit(),
		})

		// 5. Feature Loader
		mgr := loader.NewManager(logg)
		feature, err := portal.NewFeature(env.service, sessions)
		if err != nil {
			logg.Fatal("Failed to build portal", zap.Error(err))
		}
		mgr.Register(feature)
		logg.Debug("Features registered", zap.Int("count", len(mgr.Features())))

		// Middleware Registration
		// 1. Recover from handler panics
		app.Use(recover.New())
		// 2. RayID (must come before logging)
		app.Use(rayid.New())
		// 3. Request logging
		app.Use(logger.Middleware(logg))
		// 4. Security headers
		app.Use(helmet.New())
		// 5. Session cookie encryption, keyed by the app secret
		app.Use(encryptcookie.New(encryptcookie.Config{Key: cookieKey(srv.AppSecret)}))

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", srv.Port))
			if err := app.Listen(":" + srv.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		cancel()
		return app.ShutdownWithTimeout(10 * time.Second)
	},
}

// cookieKey derives the 32-byte encryptcookie key from the app secret.
func cookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func init() {
	RootCmd.AddCommand(startCmd)
}
