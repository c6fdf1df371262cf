package services

import (
	"github.com/ghuser/lendshare/pkg/app"
	"github.com/ghuser/lendshare/services/booking/infrastructure/persistence/postgres"
	itempg "github.com/ghuser/lendshare/services/item/infrastructure/persistence/postgres"
	userpg "github.com/ghuser/lendshare/services/user/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the booking lifecycle.
type Services struct {
	Booking *BookingService
}

// New wires the booking service with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		Booking: NewBookingService(
			postgres.NewBookingRepository(a.Db, a.EventBus),
			itempg.NewItemRepository(a.Db, a.EventBus),
			userpg.NewUserRepository(a.Db),
		),
	}
}
