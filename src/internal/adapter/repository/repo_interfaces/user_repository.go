package repo_interfaces

import (
	"context"

	"github.com/api-sage/core-banking-ledger/src/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.UserDetails) (domain.UserDetails, error)
	GetByUsername(ctx context.Context, username string) (domain.UserDetails, error)
	All(ctx context.Context) ([]domain.UserDetails, error)
	ReplaceAll(ctx context.Context, users []domain.UserDetails) error
}
