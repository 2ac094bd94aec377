package service_interfaces

import (
	"context"

	"github.com/api-sage/core-banking-ledger/src/internal/commons"
	"github.com/api-sage/core-banking-ledger/src/internal/usecase/models"
)

type UserService interface {
	Register(ctx context.Context, req models.RegisterUserRequest) (commons.Response[models.UserResponse], error)
	Authenticate(ctx context.Context, username, password string) (commons.Response[models.AuthenticateResponse], error)
	GetUser(ctx context.Context, username string) (commons.Response[models.UserResponse], error)
	ListAllUsers(ctx context.Context) (commons.Response[[]models.UserResponse], error)
}
