package commands

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

// serveCmd starts the HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server. The schema is migrated on startup. When RABBITMQ_URL
is set, order lifecycle events are published to RabbitMQ and consumed back into the log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// connectEvents returns nil when RabbitMQ is not configured or unreachable.
func connectEvents(cfg *config.Config) *rabbitmq.Client {
	if cfg.RabbitMQURL == "" {
		log.Println("RABBITMQ_URL is empty, order events are disabled")
		return nil
	}

	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Failed to initialize RabbitMQ client, order events are disabled: %v", err)
		return nil
	}
	if err := mqClient.ConsumeOrderEvents(rabbitmq.LogOrderEvent); err != nil {
		log.Printf("Failed to start RabbitMQ consumer: %v", err)
	}
	return mqClient
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	var publisher services.EventPublisher
	if mqClient := connectEvents(cfg); mqClient != nil {
		defer mqClient.Close()
		publisher = mqClient
	}

	server := app.NewApp(cfg, store, publisher)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s (%s, db=%s)", cfg.AppPort, cfg.AppEnv, cfg.DBDriver)
		errCh <- server.Listen(cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
	return nil
}
