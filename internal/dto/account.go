package dto

import (
	"time"

	"github.com/altaerp/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// The code is never supplied by the caller; it is allocated by the registry.
type CreateAccountRequest struct {
	Name            string             `json:"name" validate:"required"`
	Description     string             `json:"description" validate:"required"`
	AccountType     domain.AccountType `json:"type" validate:"required"`
	ParentAccountID *string            `json:"parentAccountID" validate:"omitempty,min=1"`
}

// Validate checks the request shape before it reaches the registry.
func (r CreateAccountRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateAccountRequest defines the fields an account edit may change.
// Type, code, parent and balance are immutable through this path.
type UpdateAccountRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
}

// Validate checks the request shape.
func (r UpdateAccountRequest) Validate() error {
	return validate.Struct(r)
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Name            string             `json:"name"`
	DisplayName     string             `json:"displayName"`
	Description     string             `json:"description"`
	AccountType     domain.AccountType `json:"type"`
	ParentAccountID string             `json:"parentAccountID"` // empty for roots
	Code            int                `json:"code"`
	Balance         decimal.Decimal    `json:"balance"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Name:            acc.Name,
		DisplayName:     acc.DisplayName,
		Description:     acc.Description,
		AccountType:     acc.AccountType,
		ParentAccountID: acc.ParentAccountID,
		Code:            acc.Code,
		Balance:         acc.Balance,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// ListAccountsResponse wraps one page of accounts.
type ListAccountsResponse struct {
	Accounts   []AccountResponse `json:"accounts"`
	TotalPages int               `json:"totalPages"`
}
