package bootstrap

import (
	"barberbook/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.MessagingModule,
	components.UseCaseModule,
	components.HandlerModule,
	components.WorkerModule,
)
