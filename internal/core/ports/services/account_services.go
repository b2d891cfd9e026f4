package services

import (
	"context"

	"github.com/altaerp/ledger_backend/internal/core/domain"
	"github.com/altaerp/ledger_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade is the account-registry surface consumed by the excluded
// transport layer and by the entry service.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error)

	// GetBalance and GetType answer point lookups against the registry.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	GetType(ctx context.Context, accountID string) (domain.AccountType, error)

	// ApplyDelta computes the balance the account would have after applying
	// delta. Pure computation: nothing is persisted.
	ApplyDelta(ctx context.Context, accountID string, delta decimal.Decimal) (decimal.Decimal, error)
}
