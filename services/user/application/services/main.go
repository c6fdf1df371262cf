package services

import (
	"github.com/ghuser/lendshare/pkg/app"
	"github.com/ghuser/lendshare/services/user/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the user directory.
type Services struct {
	User *UserService
}

// New wires the user service with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		User: NewUserService(postgres.NewUserRepository(a.Db)),
	}
}
