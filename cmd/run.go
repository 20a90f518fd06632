package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pycarrot2/rebrickable-bot/adapters/rebrickable"
	"github.com/pycarrot2/rebrickable-bot/adapters/telegram"
	"github.com/pycarrot2/rebrickable-bot/core"
	"github.com/pycarrot2/rebrickable-bot/internal/config"
	"github.com/pycarrot2/rebrickable-bot/internal/imagefetch"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bot",
		Long: `Starts long-polling Telegram for updates and answering set lookups.

Requires REBRICK_TOKEN and TELEGRAM_BOT_TOKEN, from the environment or
the system keychain. Set HEALTH_ADDR to also expose a liveness endpoint.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := newLogger(cfg.LogLevel)
			slog.SetDefault(logger)

			bot, err := telegram.New(cfg.TelegramToken, logger)
			if err != nil {
				return err
			}
			logger.Info("authorized on telegram", "bot", bot.Username(), "mention_handle", cfg.BotUsername)

			catalog := rebrickable.New(cfg.RebrickToken)
			dispatcher := core.NewDispatcher(catalog, bot.Sender(), imagefetch.New(), cfg.BotUsername, logger)

			runErr := make(chan error, 1)
			go func() {
				runErr <- bot.Run(cmd.Context(), dispatcher.Handle)
			}()

			var health *http.Server
			healthErr := make(chan error, 1)
			if cfg.HealthAddr != "" {
				health = healthServer(cfg.HealthAddr)
				go func() {
					logger.Info("health endpoint available", "addr", cfg.HealthAddr)
					if err := health.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						healthErr <- err
					}
				}()
			}

			select {
			case err := <-runErr:
				if health != nil {
					stopHealthServer(health, logger)
				}
				return err
			case err := <-healthErr:
				return err
			}
		},
	}
}

func healthServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("unable to write healthcheck", "error", err)
		}
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func stopHealthServer(server *http.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("health server shutdown failed", "error", err)
	}
}

func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
