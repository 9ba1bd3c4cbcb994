package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coffee-pickup/bot"
	"coffee-pickup/clock"
	"coffee-pickup/config"
	"coffee-pickup/db"
	"coffee-pickup/scheduler"
	"coffee-pickup/server"
	"coffee-pickup/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(cfg)
		return
	}

	loc, err := clock.LoadLocation(cfg.Schedule.Location)
	if err != nil {
		fmt.Fprintln(os.Stderr, "timezone:", err)
		os.Exit(1)
	}

	source, err := newOrderSource(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "order source:", err)
		os.Exit(1)
	}
	defer db.Close()

	var posters services.MultiPoster
	if cfg.Webhook.URL != "" {
		posters = append(posters, services.NewWebhookPoster(cfg.Webhook.URL, nil))
	}

	var tgAPI *tgbotapi.BotAPI
	if cfg.Telegram.Token != "" {
		tgAPI, err = tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			fmt.Fprintln(os.Stderr, "telegram:", err)
			os.Exit(1)
		}
		if cfg.Telegram.ChatID != 0 {
			posters = append(posters, bot.NewTelegramPoster(tgAPI, cfg.Telegram.ChatID))
		}
	}

	if len(posters) == 0 {
		fmt.Fprintln(os.Stderr, "no delivery target: set WEBHOOK_URL or TELEGRAM_TOKEN with TELEGRAM_CHAT_ID")
		os.Exit(1)
	}

	labels := services.DefaultOptionLabels.Hide(cfg.Render.HiddenOptions...)
	renderer := services.NewRenderer(services.RenderConfig{
		Brand:        cfg.Render.Brand,
		TestMode:     cfg.Render.TestMode,
		TestMMID:     cfg.Render.TestMMID,
		PickupNotice: cfg.Render.PickupNotice,
		Labels:       &labels,
	})
	dispatcher := services.NewDispatcher(source, posters, renderer, clock.NewSystem(loc))
	dispatcher.FetchTimeout = cfg.Source.FetchTimeout
	dispatcher.DeliveryTimeout = cfg.Webhook.DeliveryTimeout
	if db.Pool != nil {
		dispatcher.Log = services.PostgresDeliveryLog{}
	}

	sched, err := scheduler.New(cfg.Schedule, loc, dispatcher)
	if err != nil {
		fmt.Fprintln(os.Stderr, "scheduler:", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if tgAPI != nil {
		tg := bot.New(tgAPI, dispatcher, cfg.Telegram.Allowed)
		go tg.Start(stopCtx)
		defer tg.Stop()
		log.Printf("telegram bot started: @%s", tgAPI.Self.UserName)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.NewRouter(dispatcher),
	}
	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.ListenAndServe()
	}()
	log.Printf("Server is running on port %s", cfg.Server.Port)

	if cfg.Server.SendOnStartup {
		go func() {
			log.Printf("Initial message sent successfully: %v", dispatcher.SendDaily(stopCtx))
		}()
	}

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}

// newOrderSource opens the pool when orders come from Postgres.
func newOrderSource(cfg *config.Config) (services.OrderSource, error) {
	switch cfg.Source.Kind {
	case config.SourcePostgres:
		if err := initDB(cfg); err != nil {
			return nil, err
		}
		return services.PostgresOrderSource{}, nil
	case config.SourceHTTP:
		if cfg.Source.OrderAPIURL == "" {
			return nil, errors.New("ORDER_API_URL not set")
		}
		// The delivery log is optional for the HTTP source; it needs DB_HOST explicitly.
		if os.Getenv("DB_HOST") != "" {
			if err := initDB(cfg); err != nil {
				log.Printf("warning: delivery log disabled: %v", err)
			}
		}
		return services.NewHTTPOrderSource(cfg.Source.OrderAPIURL, nil), nil
	default:
		return nil, fmt.Errorf("unknown ORDER_SOURCE %q", cfg.Source.Kind)
	}
}

func initDB(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Init(ctx, cfg.DB); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	// Optional auto-migration (useful in production and for fresh DBs).
	if cfg.Server.AutoMigrate {
		if err := applyMigrations(ctx, false); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func runMigrate(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Init(ctx, cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applyMigrations(ctx, true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
