package service_interfaces

import (
	"context"

	"github.com/api-sage/core-banking-ledger/src/internal/commons"
	"github.com/api-sage/core-banking-ledger/src/internal/usecase/models"
	"github.com/shopspring/decimal"
)

type AccountService interface {
	OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error)
	ListAccountsByOwner(ctx context.Context, ownerUsername string) (commons.Response[[]models.AccountResponse], error)
	ListAllAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error)
	ApplyMonthlyInterestToAllSavings(ctx context.Context, annualRatePercent decimal.Decimal) (commons.Response[models.InterestRunResponse], error)
}
