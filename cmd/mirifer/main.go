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

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mirifer/internal/config"
	"mirifer/internal/db"
	"mirifer/internal/domain"
	"mirifer/internal/journey"
	"mirifer/internal/llm"
	"mirifer/internal/metrics"
	"mirifer/internal/notify"
	"mirifer/internal/report"
	"mirifer/internal/repository"
	"mirifer/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mirifer",
		Short: "Guided 14-day reflection service",
	}
	root.AddCommand(newServeCmd(), newUserAddCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer database.Close()

	entries := repository.NewSQLiteEntryRepo(database)
	users := repository.NewSQLiteUserRepo(database)
	surveys := repository.NewSQLiteSurveyRepo(database)

	llmCfg := llm.LoadConfig()
	client := llm.NewChatClient(llmCfg, llm.NewZapObserver(log))

	assembler := journey.NewAssembler(entries, log)
	journeySvc := journey.NewService(entries, assembler, client, log)
	reportSvc := report.NewService(entries, client, report.TextEmitter{}, log)
	aggregator := metrics.NewAggregator(entries, surveys)

	notifier := notify.NewEmailNotifier(notify.EmailConfig{
		APIKey: cfg.Email.APIKey,
		From:   cfg.Email.From,
		To:     cfg.Email.To,
	}, log)

	srv := server.New(server.Options{
		Users:         users,
		Surveys:       surveys,
		Journey:       journeySvc,
		Reports:       reportSvc,
		Metrics:       aggregator,
		Notifier:      notifier,
		Limiter:       server.NewWindowLimiter(cfg.RateLimit.Window, cfg.RateLimit.Max),
		Log:           log,
		AdminPassword: cfg.Admin.Password,
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newUserAddCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "user-add <access-code>",
		Short: "Provision a trial user with the given access code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			database, err := db.OpenDB(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer database.Close()

			users := repository.NewSQLiteUserRepo(database)
			user := &domain.User{
				ID:          uuid.New().String(),
				AccessCode:  args[0],
				DisplayName: name,
				IsActive:    true,
			}
			if err := users.Create(cmd.Context(), user); err != nil {
				return fmt.Errorf("creating user: %w", err)
			}
			fmt.Printf("Created user %s with access code %s\n", user.ID, user.AccessCode)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name for the user")
	return cmd
}
