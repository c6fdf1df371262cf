package services

import (
	"github.com/ghuser/lendshare/pkg/app"
	"github.com/ghuser/lendshare/pkg/cache"
	bookingpg "github.com/ghuser/lendshare/services/booking/infrastructure/persistence/postgres"
	"github.com/ghuser/lendshare/services/item/infrastructure/persistence/postgres"
	requestpg "github.com/ghuser/lendshare/services/request/infrastructure/persistence/postgres"
	userpg "github.com/ghuser/lendshare/services/user/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the item catalog.
type Services struct {
	Item *ItemService
}

// New wires the item service with infrastructure from the Application container.
func New(a *app.Application) *Services {
	var itemCache *cache.ItemCache
	if a.Redis != nil {
		itemCache = cache.NewItemCache(a.Redis)
	}

	return &Services{
		Item: NewItemService(
			postgres.NewItemRepository(a.Db, a.EventBus),
			postgres.NewCommentRepository(a.Db),
			userpg.NewUserRepository(a.Db),
			requestpg.NewRequestRepository(a.Db),
			bookingpg.NewBookingRepository(a.Db, a.EventBus),
			itemCache,
			a.Logger,
		),
	}
}
