package bootstrap

import (
	"exechire/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	JWTModule,
	MailModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
