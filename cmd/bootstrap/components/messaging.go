package components

import (
	"context"
	"log/slog"

	"barberbook/internal/infra/events"
	"barberbook/internal/infra/gateway"
	"barberbook/internal/pkg/config"
	"barberbook/internal/usecase/commands"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		fx.Annotate(
			NewStripeGateway,
			fx.As(new(commands.PaymentGateway)),
		),
		NewEventPublisher,
	),
)

func NewStripeGateway(cfg config.Config) *gateway.StripeGateway {
	return gateway.NewStripeGateway(cfg.Stripe)
}

// NewEventPublisher falls back to a no-op publisher when no broker URL is
// configured so local setups run without RabbitMQ.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (commands.EventPublisher, error) {
	if cfg.AMQP.URL == "" {
		logger.Warn("AMQP_URL is empty, booking events will not be published")
		return events.NopPublisher{}, nil
	}

	pub, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})

	return pub, nil
}
