package components

import (
	"barberbook/internal/pkg/clock"
	"barberbook/internal/pkg/config"
	"barberbook/internal/usecase"
	"barberbook/internal/usecase/commands"
	"barberbook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) commands.BookingPolicy {
		return commands.BookingPolicy{
			HoldTTL:            cfg.Booking.HoldTTL,
			DepositPercent:     cfg.Booking.DepositPercent,
			MaxPaymentAttempts: cfg.Booking.MaxPaymentAttempts,
			Currency:           cfg.Stripe.Currency,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewPaymentCommands,
		commands.NewReviewCommands,
		commands.NewSweepCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCatalogQueries,
		queries.NewBookingQueries,
		queries.NewReviewQueries,
		func(repo queries.AvailabilityReadStore, clk clock.Clock, cfg config.Config) queries.AvailabilityQueries {
			return queries.NewAvailabilityQueries(repo, clk, cfg.Booking.SlotGranularityMin)
		},
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
