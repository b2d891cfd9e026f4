package services

import (
	"context"

	"github.com/altaerp/ledger_backend/internal/core/domain"
	"github.com/altaerp/ledger_backend/internal/dto"
)

// ReportingSvcFacade serves the diary and ledger reports. Read-only.
type ReportingSvcFacade interface {
	GetDiary(ctx context.Context, params dto.DiaryParams) (*dto.DiaryResponse, error)
	GetLedger(ctx context.Context, params dto.LedgerParams) (*dto.LedgerResponse, error)
	GetSeat(ctx context.Context, entryID string) (*dto.EntryDetailResponse, error)
	GetEntries(ctx context.Context, params dto.DiaryParams) (*dto.EntriesResponse, error)
	GetEntryStatistics(ctx context.Context, year int) (*domain.EntryStatistics, error)
}
