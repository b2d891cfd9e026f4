package services

import (
	"context"

	"github.com/altaerp/ledger_backend/internal/core/domain"
	"github.com/altaerp/ledger_backend/internal/dto"
)

// EntrySvcFacade validates and commits balanced journal entries.
type EntrySvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, authorID string) (*domain.Entry, error)
}
