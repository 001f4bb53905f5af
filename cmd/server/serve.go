package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	handlers "github.com/kawsar-hussain/server-A11/internal/adapter/handler/http"
	"github.com/kawsar-hussain/server-A11/internal/config"
	"github.com/kawsar-hussain/server-A11/internal/infrastructure/database"
	grpcServer "github.com/kawsar-hussain/server-A11/internal/infrastructure/grpc"
	httpServer "github.com/kawsar-hussain/server-A11/internal/infrastructure/http"
	"github.com/kawsar-hussain/server-A11/internal/infrastructure/notify"
	"github.com/kawsar-hussain/server-A11/internal/infrastructure/provider/stripe"
	"github.com/kawsar-hussain/server-A11/internal/usecase"
	"github.com/kawsar-hussain/server-A11/pkg/messaging"
)

func serveCmd() *cobra.Command {
	var skipIndexes bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the gRPC health server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(skipIndexes)
		},
	}
	cmd.Flags().BoolVar(&skipIndexes, "skip-indexes", false, "do not create indexes on startup")

	return cmd
}

func runServe(skipIndexes bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, client, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer func() {
		if err := database.Close(context.Background(), client, log); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	db := client.Database(cfg.Mongo.Database)
	if !skipIndexes {
		if err := database.EnsureIndexes(ctx, db, log); err != nil {
			return err
		}
	}

	// Initialize repositories
	repos := database.NewRepositories(db, cfg.Mongo.OperationTimeout, log)

	// Payment notifiers are optional
	notifiers, publisher := buildNotifiers(ctx, cfg, log)
	if publisher != nil {
		defer publisher.Close()
	}

	if cfg.Stripe.SecretKey == "" {
		log.Warn("Stripe secret key is not set; checkout calls will fail")
	}
	gateway := stripe.NewStripeProvider(&cfg.Stripe, log)

	requestUsecase := usecase.NewDonationRequestUsecase(repos.DonationRequest, log)
	userUsecase := usecase.NewUserUsecase(repos.User, log)
	paymentUsecase := usecase.NewPaymentUsecase(repos.Payment, gateway, usecase.PaymentConfig{
		SiteOrigin:  cfg.Service.SiteOrigin,
		Currency:    cfg.Service.Currency,
		ProductName: cfg.Stripe.ProductName,
		Timeout:     cfg.Stripe.Timeout + 2*cfg.Mongo.OperationTimeout,
	}, log, notifiers...)

	health := func(ctx context.Context) error {
		return database.Ping(ctx, client)
	}

	httpSrv := httpServer.NewServer(cfg, log, handlers.Handlers{
		DonationRequest: handlers.NewDonationRequestHandler(requestUsecase, log),
		Payment:         handlers.NewPaymentHandler(paymentUsecase, log),
		User:            handlers.NewUserHandler(userUsecase, log),
	}, health)

	var grpcSrv *grpcServer.Server
	if cfg.Server.GRPC.Enabled {
		grpcSrv = grpcServer.NewServer(cfg, log, health)
	}

	errCh := make(chan error, 2)
	go func() {
		errCh <- httpSrv.Start()
	}()
	if grpcSrv != nil {
		go func() {
			errCh <- grpcSrv.Start()
		}()
	}

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down servers...")
	case serveErr = <-errCh:
		if serveErr != nil {
			log.Error("Server stopped unexpectedly", zap.Error(serveErr))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.HTTP.ShutdownTimeout)
	defer cancel()

	if grpcSrv != nil {
		if err := grpcSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shutdown gRPC server", zap.Error(err))
		}
	}
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	log.Info("Servers shut down")
	return serveErr
}

func buildNotifiers(ctx context.Context, cfg *config.Config, log *zap.Logger) ([]usecase.PaymentNotifier, messaging.Publisher) {
	var (
		notifiers []usecase.PaymentNotifier
		publisher messaging.Publisher
	)

	if cfg.Redis.Addr != "" {
		p, err := messaging.NewRedisPublisher(ctx, messaging.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Payment events disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			publisher = p
			notifiers = append(notifiers, notify.NewEventNotifier(p, cfg.Redis.Channel, log))
		}
	}

	if mailer := notify.NewReceiptMailer(&cfg.Email, cfg.Service.Name, log); mailer != nil {
		notifiers = append(notifiers, mailer)
	}

	return notifiers, publisher
}
