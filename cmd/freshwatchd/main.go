// Command freshwatchd wires the notification engine together with a
// logging delivery backend and feeds it a few sample alerts. It exists to
// demonstrate engine wiring; real hosts embed pkg/engine directly and
// supply their platform's notifier.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/freshwatch/pkg/alerts"
	"github.com/dmitrymomot/freshwatch/pkg/compose"
	"github.com/dmitrymomot/freshwatch/pkg/config"
	"github.com/dmitrymomot/freshwatch/pkg/engine"
	"github.com/dmitrymomot/freshwatch/pkg/kvstore"
	"github.com/dmitrymomot/freshwatch/pkg/logger"
)

type appConfig struct {
	LogLevel  slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat logger.Format `env:"LOG_FORMAT" envDefault:"text"`
	Store     string        `env:"FRESHWATCH_STORE" envDefault:"memory"` // memory, redis or postgres
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithLevel(cfg.LogLevel),
		logger.WithFormat(cfg.LogFormat),
		logger.WithAttr(slog.String("service", "freshwatchd")),
	)
	logger.SetAsDefault(log)

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}

	eng := engine.New(store, &logNotifier{log: log}, engine.WithLogger(log))
	if err := eng.Initialize(ctx); err != nil {
		return err
	}

	for _, alert := range sampleAlerts() {
		if _, err := eng.ScheduleNotification(ctx, alert); err != nil {
			log.Error("failed to schedule alert", logger.AlertID(alert.ID), logger.Error(err))
		}
	}

	// Force out whatever the batch window is still holding.
	eng.FlushBatch()

	s := eng.Statistics()
	log.Info("engine statistics",
		slog.Int("total_sent", s.TotalSent),
		slog.Int("total_delivered", s.TotalDelivered),
		slog.Int("effectiveness_score", s.EffectivenessScore),
	)
	return nil
}

func openStore(ctx context.Context, backend string) (kvstore.Store, error) {
	switch backend {
	case "redis":
		var cfg kvstore.RedisConfig
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		return kvstore.ConnectRedis(ctx, cfg)
	case "postgres":
		var cfg kvstore.PostgresConfig
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		return kvstore.ConnectPostgres(ctx, cfg)
	default:
		return kvstore.NewMemoryStore(), nil
	}
}

// logNotifier prints would-be platform notifications instead of showing
// them.
type logNotifier struct {
	log *slog.Logger
}

func (n *logNotifier) ScheduleAt(ctx context.Context, payload compose.Payload, at time.Time) error {
	n.log.Info("notification scheduled",
		logger.NotificationID(payload.ID),
		slog.String("channel_id", payload.ChannelID),
		slog.String("title", payload.Title),
		slog.String("message", payload.Message),
		slog.Time("at", at),
	)
	return nil
}

func (n *logNotifier) Cancel(ctx context.Context, id string) error {
	n.log.Info("notification cancelled", logger.NotificationID(id))
	return nil
}

func (n *logNotifier) CancelAll(ctx context.Context) error {
	n.log.Info("all notifications cancelled")
	return nil
}

func (n *logNotifier) CreateChannel(ctx context.Context, spec compose.ChannelSpec) error {
	n.log.Info("notification channel created", slog.String("channel_id", spec.ID))
	return nil
}

func sampleAlerts() []alerts.Alert {
	now := time.Now()
	return []alerts.Alert{
		{
			ID:        "alert-1",
			ProductID: "prod-1",
			Product: alerts.Product{
				ID: "prod-1", Name: "Milk", Category: "Dairy", Location: "Fridge",
				ExpirationDate: now.Add(24 * time.Hour),
			},
			Type:                alerts.TypeCriticalExpiring,
			Severity:            alerts.SeverityCritical,
			DaysUntilExpiration: 1,
		},
		{
			ID:        "alert-2",
			ProductID: "prod-2",
			Product: alerts.Product{
				ID: "prod-2", Name: "Yogurt", Category: "Dairy", Location: "Fridge",
				ExpirationDate: now.Add(72 * time.Hour),
			},
			Type:                alerts.TypeExpiringSoon,
			Severity:            alerts.SeverityMedium,
			DaysUntilExpiration: 3,
		},
		{
			ID:        "alert-3",
			ProductID: "prod-3",
			Product: alerts.Product{
				ID: "prod-3", Name: "Spinach", Category: "Produce", Location: "Fridge",
				ExpirationDate: now.Add(48 * time.Hour),
			},
			Type:                alerts.TypeConsumePriority,
			Severity:            alerts.SeverityHigh,
			DaysUntilExpiration: 2,
		},
	}
}
