package models

import (
	"fmt"
	"strings"

	"github.com/api-sage/core-banking-ledger/src/internal/domain"
)

type OpenAccountRequest struct {
	OwnerUsername string `json:"ownerUsername"`
	BankName      string `json:"bankName"`
	AccountType   string `json:"accountType"`
}

func (r OpenAccountRequest) Validate() error {
	if strings.TrimSpace(r.OwnerUsername) == "" {
		return fmt.Errorf("ownerUsername is required")
	}
	switch domain.AccountType(strings.ToUpper(strings.TrimSpace(r.AccountType))) {
	case domain.AccountTypeSavings, domain.AccountTypeCurrent:
		return nil
	default:
		return fmt.Errorf("accountType must be SAVINGS or CURRENT")
	}
}

type AccountResponse struct {
	AccountNumber string  `json:"accountNumber"`
	OwnerUsername string  `json:"ownerUsername"`
	BankName      string  `json:"bankName"`
	AccountType   string  `json:"accountType"`
	Balance       string  `json:"balance"`
	MinBalance    *string `json:"minBalance,omitempty"`
	Summary       string  `json:"summary"`
}

type InterestRunResponse struct {
	AccountsCredited int    `json:"accountsCredited"`
	TotalInterest    string `json:"totalInterest"`
}
