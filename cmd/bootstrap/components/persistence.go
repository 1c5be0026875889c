package components

import (
	"exechire/internal/infra/cache"
	"exechire/internal/infra/db"
	"exechire/internal/infra/readstore"
	"exechire/internal/infra/uow"
	"exechire/internal/pkg/config"
	"exechire/internal/usecase/commands"
	"exechire/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork owns the write-side repositories; they are created
		// per-transaction against the pgx.Tx.
		uow.NewPostgresUoW,
		// User
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserViewRepo)),
		),
		// Booking
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
		// Notification
		fx.Annotate(
			readstore.NewNotificationReadStore,
			fx.As(new(queries.NotificationViewRepo)),
		),
		// Vehicle reads go through the Redis cache; the raw readstore is the
		// cache's fallback and source of truth.
		readstore.NewVehicleReadStore,
		fx.Annotate(
			NewVehicleCache,
			fx.As(new(queries.VehicleViewRepo)),
			fx.As(new(queries.VehicleFlagRepo)),
			fx.As(new(commands.VehicleCacheInvalidator)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewVehicleCache(inner *readstore.VehicleReadStore, client *redis.Client, cfg config.Config) *cache.CachedVehicleReadStore {
	return cache.NewCachedVehicleReadStore(inner, client, cfg.Redis.CacheTTL)
}
