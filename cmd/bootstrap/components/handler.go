package components

import (
	"exechire/internal/handler"
	"exechire/internal/handler/api"
	"exechire/internal/handler/middleware"
	"exechire/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		api.NewAuthHandler,
		api.NewVehicleHandler,
		api.NewBookingHandler,
		api.NewPaymentHandler,
		api.NewNotificationHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	vehicle *api.VehicleHandler,
	booking *api.BookingHandler,
	payment *api.PaymentHandler,
	notification *api.NotificationHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:         auth,
		Vehicle:      vehicle,
		Booking:      booking,
		Payment:      payment,
		Notification: notification,
	}
}
