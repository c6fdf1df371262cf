package services

import (
	"github.com/ghuser/lendshare/pkg/app"
	itempg "github.com/ghuser/lendshare/services/item/infrastructure/persistence/postgres"
	"github.com/ghuser/lendshare/services/request/infrastructure/persistence/postgres"
	userpg "github.com/ghuser/lendshare/services/user/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the request board.
type Services struct {
	Request *RequestService
}

// New wires the request service with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		Request: NewRequestService(
			postgres.NewRequestRepository(a.Db),
			userpg.NewUserRepository(a.Db),
			itempg.NewItemRepository(a.Db, a.EventBus),
		),
	}
}
