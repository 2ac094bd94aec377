package services

import (
	"context"
	"errors"
	"strings"

	"github.com/api-sage/core-banking-ledger/src/internal/accountno"
	"github.com/api-sage/core-banking-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking-ledger/src/internal/commons"
	"github.com/api-sage/core-banking-ledger/src/internal/domain"
	"github.com/api-sage/core-banking-ledger/src/internal/logger"
	"github.com/api-sage/core-banking-ledger/src/internal/usecase/models"
	"github.com/api-sage/core-banking-ledger/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

var _ service_interfaces.AccountService = (*AccountService)(nil)

type AccountService struct {
	accountRepo     repo_interfaces.AccountRepository
	userRepo        repo_interfaces.UserRepository
	numbers         *accountno.Generator
	ledger          *LedgerService
	checkpoints     service_interfaces.CheckpointService
	defaultBankName string
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	userRepo repo_interfaces.UserRepository,
	numbers *accountno.Generator,
	ledger *LedgerService,
	checkpoints service_interfaces.CheckpointService,
	defaultBankName string,
) *AccountService {
	return &AccountService{
		accountRepo:     accountRepo,
		userRepo:        userRepo,
		numbers:         numbers,
		ledger:          ledger,
		checkpoints:     checkpoints,
		defaultBankName: strings.TrimSpace(defaultBankName),
	}
}

func (s *AccountService) OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service open account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service open account validation failed", err, nil)
		return commons.ErrorResponseFromErr[models.AccountResponse]("validation failed", err), err
	}

	ownerUsername := strings.TrimSpace(req.OwnerUsername)
	if _, err := s.userRepo.GetByUsername(ctx, ownerUsername); err != nil {
		logger.Error("account service open account owner lookup failed", err, logger.Fields{
			"ownerUsername": ownerUsername,
		})
		if errors.Is(err, domain.ErrUserNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("User not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
	}

	bankName := strings.TrimSpace(req.BankName)
	if bankName == "" {
		bankName = s.defaultBankName
	}

	accountNumber := s.numbers.Generate()
	var account domain.Account
	switch domain.AccountType(strings.ToUpper(strings.TrimSpace(req.AccountType))) {
	case domain.AccountTypeSavings:
		account = domain.NewSavingsAccount(ownerUsername, bankName, accountNumber)
	case domain.AccountTypeCurrent:
		account = domain.NewCurrentAccount(ownerUsername, bankName, accountNumber)
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		logger.Error("account service open account repository failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
	}

	response := mapAccountToResponse(account)
	logger.Info("account service open account success", logger.Fields{
		"accountNumber": response.AccountNumber,
		"ownerUsername": response.OwnerUsername,
		"accountType":   response.AccountType,
	})

	return commons.SuccessResponse("account opened successfully", response), nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error) {
	accountNumber = strings.TrimSpace(accountNumber)
	logger.Info("account service get account request", logger.Fields{
		"accountNumber": accountNumber,
	})

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("account service get account failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		if errors.Is(err, domain.ErrAccountNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse("account fetched successfully", mapAccountToResponse(account)), nil
}

func (s *AccountService) ListAccountsByOwner(ctx context.Context, ownerUsername string) (commons.Response[[]models.AccountResponse], error) {
	ownerUsername = strings.TrimSpace(ownerUsername)

	accounts, err := s.accountRepo.ListByOwner(ctx, ownerUsername)
	if err != nil {
		logger.Error("account service list by owner failed", err, logger.Fields{
			"ownerUsername": ownerUsername,
		})
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to list accounts right now"), err
	}

	return commons.SuccessResponse("accounts fetched successfully", mapAccountsToResponses(accounts)), nil
}

func (s *AccountService) ListAllAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error) {
	accounts, err := s.accountRepo.All(ctx)
	if err != nil {
		logger.Error("account service list all failed", err, nil)
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to list accounts right now"), err
	}

	return commons.SuccessResponse("accounts fetched successfully", mapAccountsToResponses(accounts)), nil
}

// ApplyMonthlyInterestToAllSavings credits one month of interest to every
// savings account, each under its account lock, then checkpoints. A failing
// checkpoint is logged and reported in the message, never fatal: the credited
// balances stand and the next checkpoint picks them up.
func (s *AccountService) ApplyMonthlyInterestToAllSavings(ctx context.Context, annualRatePercent decimal.Decimal) (commons.Response[models.InterestRunResponse], error) {
	logger.Info("account service interest run request", logger.Fields{
		"annualRatePercent": annualRatePercent.String(),
	})

	savings, err := s.accountRepo.ListSavings(ctx)
	if err != nil {
		logger.Error("account service interest run listing failed", err, nil)
		return commons.ErrorResponse[models.InterestRunResponse]("failed to apply interest", "Unable to apply interest right now"), err
	}

	credited := 0
	total := domain.ZeroMoney()
	for _, account := range savings {
		var interest domain.Money
		s.ledger.withAccountLock(account.AccountNumber(), func() {
			interest = account.ApplyMonthlyInterest(annualRatePercent)
		})
		if interest.IsPositive() {
			credited++
			total = total.Add(interest)
		}
	}

	response := models.InterestRunResponse{
		AccountsCredited: credited,
		TotalInterest:    total.String(),
	}

	if err := s.checkpoints.Checkpoint(ctx); err != nil {
		logger.Error("account service interest run checkpoint failed", err, nil)
		return commons.SuccessResponse("interest applied, checkpoint pending", response), nil
	}

	logger.Info("account service interest run success", logger.Fields{
		"accountsCredited": response.AccountsCredited,
		"totalInterest":    response.TotalInterest,
	})

	return commons.SuccessResponse("interest applied successfully", response), nil
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	response := models.AccountResponse{
		AccountNumber: account.AccountNumber(),
		OwnerUsername: account.OwnerUsername(),
		BankName:      account.BankName(),
		AccountType:   string(account.Type()),
		Balance:       account.Balance().String(),
		Summary:       account.Summary(),
	}
	if savings, ok := account.(*domain.SavingsAccount); ok {
		minBalance := savings.MinimumBalance().String()
		response.MinBalance = &minBalance
	}
	return response
}

func mapAccountsToResponses(accounts []domain.Account) []models.AccountResponse {
	out := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, mapAccountToResponse(account))
	}
	return out
}
