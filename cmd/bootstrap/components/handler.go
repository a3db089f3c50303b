package components

import (
	"slotgate/internal/handler"
	"slotgate/internal/handler/api"
	"slotgate/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewCheckoutHandler,
		api.NewWebhookHandler,
		api.NewScheduleHandler,
		api.NewAppointmentHandler,
		api.NewListingHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	availability *api.AvailabilityHandler,
	checkout *api.CheckoutHandler,
	webhook *api.WebhookHandler,
	schedule *api.ScheduleHandler,
	appointment *api.AppointmentHandler,
	listing *api.ListingHandler,
) handler.Handlers {
	return handler.Handlers{
		Availability: availability,
		Checkout:     checkout,
		Webhook:      webhook,
		Schedule:     schedule,
		Appointment:  appointment,
		Listing:      listing,
	}
}
