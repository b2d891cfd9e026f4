package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/altaerp/ledger_backend/internal/apperrors"
	"github.com/altaerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/altaerp/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/altaerp/ledger_backend/internal/core/ports/services"
	"github.com/altaerp/ledger_backend/internal/dto"
	"github.com/altaerp/ledger_backend/internal/utils/pagination"
	"github.com/altaerp/ledger_backend/internal/utils/textutil"
)

var (
	// ErrInvalidAccountType is returned when an account type outside the
	// five recognized classifications is supplied.
	ErrInvalidAccountType = errors.New("invalid account type")
	// ErrInvalidParent is returned when the referenced parent account does
	// not exist.
	ErrInvalidParent = errors.New("parent account not found")
)

// typeBaseCodes maps each account type to the base of its reserved
// thousand-block in the chart of accounts.
var typeBaseCodes = map[domain.AccountType]int{
	domain.Asset:          1000,
	domain.Liability:      2000,
	domain.PositiveResult: 3000,
	domain.NegativeResult: 4000,
	domain.Equity:         5000,
}

// accountService owns the chart of accounts: hierarchical code allocation,
// lookups, and balance/type queries. Balances themselves are only ever
// written by the entry service's transaction.
type accountService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryWithTx
	maxRetries      int
	defaultPageSize int
}

// AccountServiceOption is a functional option for configuring the account service.
type AccountServiceOption func(*accountService)

// WithAccountMaxRetries bounds the retry loop around code-allocation races.
func WithAccountMaxRetries(n int) AccountServiceOption {
	return func(s *accountService) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithAccountPageSize sets the page size used when a caller asks for a page
// without saying how large.
func WithAccountPageSize(n int) AccountServiceOption {
	return func(s *accountService) {
		if n > 0 {
			s.defaultPageSize = n
		}
	}
}

// NewAccountService creates the account registry service.
func NewAccountService(repo portsrepo.AccountRepositoryWithTx, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo:     repo,
		maxRetries:      3,
		defaultPageSize: 20,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account, allocating its tree-positional code.
// Two concurrent creations under the same parent may race on the unique code
// column; the loser re-reads the highest sibling code and retries.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccountType, req.AccountType)
	}

	displayName := textutil.StripDiacritics(req.Name)
	name := textutil.NormalizeKey(req.Name)

	if existing, err := s.accountRepo.FindAccountByName(ctx, name); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account name %q: %w", name, err)
	} else if existing != nil {
		return nil, fmt.Errorf("%w: account %q already registered", apperrors.ErrDuplicate, name)
	}

	parentID := ""
	if req.ParentAccountID != nil {
		parentID = *req.ParentAccountID
	}

	now := time.Now().UTC()
	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		code, err := s.allocateCode(ctx, req.AccountType, parentID)
		if err != nil {
			return nil, err
		}

		account := domain.Account{
			AccountID:       uuid.NewString(),
			Name:            name,
			DisplayName:     displayName,
			Description:     req.Description,
			AccountType:     req.AccountType,
			ParentAccountID: parentID,
			Code:            code,
			Balance:         decimal.Zero,
			IsActive:        true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}

		err = s.accountRepo.SaveAccount(ctx, account)
		if err == nil {
			s.LogInfo(ctx, "Account created",
				slog.String("account_id", account.AccountID),
				slog.Int("code", account.Code),
				slog.String("type", string(account.AccountType)))
			return &account, nil
		}
		if !apperrors.IsTransient(err) {
			return nil, err
		}
		lastErr = err
		s.LogWarn(ctx, "Account code collision, reallocating",
			slog.Int("code", code), slog.Int("attempt", attempt))
	}
	return nil, fmt.Errorf("account code allocation kept conflicting after %d attempts: %w", s.maxRetries, lastErr)
}

// allocateCode computes the next free code for a new account.
//
// Root accounts live on hundred boundaries inside their type's reserved
// thousand-block (first Asset root is 1100, then 1200, ...). Children of a
// hundred-level account step by ten (1110, 1120, ...); children of a
// ten-level account step by one (1111, 1112, ...). The scheme allows two
// levels of sub-accounts without renumbering.
func (s *accountService) allocateCode(ctx context.Context, accountType domain.AccountType, parentID string) (int, error) {
	if parentID == "" {
		base, ok := typeBaseCodes[accountType]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAccountType, accountType)
		}
		highest, err := s.accountRepo.HighestCodeInRange(ctx, base, base+1000)
		if err != nil {
			return 0, fmt.Errorf("failed to scan code block for type %s: %w", accountType, err)
		}
		if highest == 0 {
			return base + 100, nil
		}
		return (highest/100)*100 + 100, nil
	}

	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, fmt.Errorf("%w: ID %s", ErrInvalidParent, parentID)
		}
		return 0, fmt.Errorf("failed to fetch parent account %s: %w", parentID, err)
	}

	parentCode := parent.Code
	step := 1
	rangeEnd := parentCode + 10
	if parentCode%100 == 0 {
		// Hundred-level parent: children occupy the ten-slots below it.
		step = 10
		rangeEnd = parentCode + 100
	}

	highest, err := s.accountRepo.HighestChildCode(ctx, parentID, parentCode, rangeEnd)
	if err != nil {
		return 0, fmt.Errorf("failed to scan child codes of account %s: %w", parentID, err)
	}
	if highest == 0 {
		return parentCode + step, nil
	}
	return highest + step, nil
}

// UpdateAccount edits an account's name and description. Type, code, parent
// and balance are immutable through this path.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		name := textutil.NormalizeKey(*req.Name)
		if name != account.Name {
			if existing, err := s.accountRepo.FindAccountByName(ctx, name); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("failed to check account name %q: %w", name, err)
			} else if existing != nil && existing.AccountID != accountID {
				return nil, fmt.Errorf("%w: account %q already registered", apperrors.ErrDuplicate, name)
			}
		}
		account.Name = name
		account.DisplayName = textutil.StripDiacritics(*req.Name)
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccountDetails(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are
// simply absent from the map; the caller decides whether that is an error.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts returns one page of the chart of accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	page := pagination.Params{Page: params.Page, PageSize: params.PageSize}.WithDefaultSize(s.defaultPageSize)

	limit := 0
	if page.Enabled() {
		limit = page.PageSize
	}
	accounts, totalCount, err := s.accountRepo.ListAccounts(ctx, limit, page.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	resp := &dto.ListAccountsResponse{
		Accounts:   make([]dto.AccountResponse, len(accounts)),
		TotalPages: page.TotalPages(totalCount),
	}
	for i := range accounts {
		resp.Accounts[i] = dto.ToAccountResponse(&accounts[i])
	}
	return resp, nil
}

// GetBalance returns the account's current stored balance.
func (s *accountService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// GetType returns the account's type.
func (s *accountService) GetType(ctx context.Context, accountID string) (domain.AccountType, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return "", err
	}
	return account.AccountType, nil
}

// ApplyDelta computes the balance the account would hold after applying
// delta. Pure computation; persistence happens only inside the entry
// service's transaction.
func (s *accountService) ApplyDelta(ctx context.Context, accountID string, delta decimal.Decimal) (decimal.Decimal, error) {
	balance, err := s.GetBalance(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return balance.Add(delta), nil
}
