package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/altaerp/ledger_backend/internal/apperrors"
	"github.com/altaerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/altaerp/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/altaerp/ledger_backend/internal/core/ports/services"
	"github.com/altaerp/ledger_backend/internal/dto"
	"github.com/altaerp/ledger_backend/internal/utils/accounting"
	"github.com/altaerp/ledger_backend/internal/utils/dates"
	"github.com/altaerp/ledger_backend/internal/utils/pagination"
)

// reportingService serves the diary and ledger reports. It only reads
// committed data and never raises business invariants.
type reportingService struct {
	BaseService
	reportingRepo   portsrepo.ReportingRepository
	now             func() time.Time
	defaultPageSize int
}

// ReportingServiceOption is a functional option for configuring the reporting service.
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the clock used for default date ranges.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// WithReportingPageSize sets the page size used when a caller asks for a
// page without saying how large.
func WithReportingPageSize(n int) ReportingServiceOption {
	return func(s *reportingService) {
		if n > 0 {
			s.defaultPageSize = n
		}
	}
}

// NewReportingService creates the ledger query engine.
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		reportingRepo:   repo,
		now:             time.Now,
		defaultPageSize: 20,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// resolveRange turns the optional dateFrom/dateTo pair into a concrete
// inclusive range. No range at all means the current calendar month; a
// supplied dateTo reaches through 23:59:59 of its day.
func (s *reportingService) resolveRange(params dto.DiaryParams) (time.Time, time.Time) {
	if params.DateFrom == nil && params.DateTo == nil {
		return dates.CurrentMonthRange(s.now())
	}
	var from time.Time
	if params.DateFrom != nil {
		from = *params.DateFrom
	}
	to := s.now()
	if params.DateTo != nil {
		to = *params.DateTo
	}
	return from, dates.EndOfDay(to)
}

// GetDiary lists journal entries with their posting lines, joined with the
// account display names, inside the requested range.
func (s *reportingService) GetDiary(ctx context.Context, params dto.DiaryParams) (*dto.DiaryResponse, error) {
	from, to := s.resolveRange(params)
	page := pagination.Params{Page: params.Page, PageSize: params.PageSize}.WithDefaultSize(s.defaultPageSize)

	totalCount, err := s.reportingRepo.CountEntriesInRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to count diary entries")
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	entries, err := s.listEntryPage(ctx, from, to, page, params.Descending)
	if err != nil {
		return nil, err
	}

	entryIDs := make([]string, len(entries))
	for i, e := range entries {
		entryIDs[i] = e.EntryID
	}
	linesMap, err := s.reportingRepo.FindDiaryLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch diary lines")
		return nil, fmt.Errorf("failed to fetch postings for diary: %w", err)
	}

	diary := make([]domain.DiaryEntry, len(entries))
	for i, e := range entries {
		diary[i] = domain.DiaryEntry{Entry: e, Postings: linesMap[e.EntryID]}
	}

	s.LogDebug(ctx, "Diary generated", slog.Int("entries", len(diary)), slog.Int64("total", totalCount))
	return &dto.DiaryResponse{Entries: diary, TotalPages: page.TotalPages(totalCount)}, nil
}

// GetEntries is the flat chronological listing without the account join.
func (s *reportingService) GetEntries(ctx context.Context, params dto.DiaryParams) (*dto.EntriesResponse, error) {
	from, to := s.resolveRange(params)
	page := pagination.Params{Page: params.Page, PageSize: params.PageSize}.WithDefaultSize(s.defaultPageSize)

	totalCount, err := s.reportingRepo.CountEntriesInRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to count entries")
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	entries, err := s.listEntryPage(ctx, from, to, page, params.Descending)
	if err != nil {
		return nil, err
	}

	resp := &dto.EntriesResponse{
		Entries:    make([]dto.EntryResponse, len(entries)),
		TotalPages: page.TotalPages(totalCount),
	}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i])
	}
	return resp, nil
}

func (s *reportingService) listEntryPage(ctx context.Context, from, to time.Time, page pagination.Params, descending bool) ([]domain.Entry, error) {
	limit := 0
	if page.Enabled() {
		limit = page.PageSize
	}
	entries, err := s.reportingRepo.ListEntriesInRange(ctx, from, to, limit, page.Offset(), descending)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries")
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// GetSeat retrieves one entry with its posting lines.
func (s *reportingService) GetSeat(ctx context.Context, entryID string) (*dto.EntryDetailResponse, error) {
	entry, err := s.reportingRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	linesMap, err := s.reportingRepo.FindDiaryLinesByEntryIDs(ctx, []string{entryID})
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch postings for entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to fetch postings for entry %s: %w", entryID, err)
	}

	return &dto.EntryDetailResponse{
		Entry:    dto.ToEntryResponse(entry),
		Postings: linesMap[entryID],
	}, nil
}

// GetLedger produces the per-account statement report over balance-sheet
// (Asset/Liability) accounts. The opening balance is the balance before the
// first in-range posting; the final balance is the resulting balance of the
// last one. Accounts without in-range postings are excluded.
func (s *reportingService) GetLedger(ctx context.Context, params dto.LedgerParams) (*dto.LedgerResponse, error) {
	from, to := s.resolveRange(params.DiaryParams)

	statements, err := s.reportingRepo.ListLedgerStatements(ctx, from, to, params.Search)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger statements")
		return nil, fmt.Errorf("failed to fetch ledger statements: %w", err)
	}

	for i := range statements {
		st := &statements[i]
		if len(st.Postings) == 0 {
			continue
		}
		// Postings arrive in ascending order; balances derive from the
		// first and last snapshots regardless of presentation order.
		opening, err := accounting.BalanceBefore(st.Postings[0].Posting, st.AccountType)
		if err != nil {
			return nil, fmt.Errorf("failed to derive opening balance for account %s: %w", st.AccountID, err)
		}
		st.OpeningBalance = opening
		st.FinalBalance = st.Postings[len(st.Postings)-1].ResultingBalance

		if params.Descending {
			reverseLines(st.Postings)
		}
	}

	page := pagination.Params{Page: params.Page, PageSize: params.PageSize}.WithDefaultSize(s.defaultPageSize)
	totalPages := page.TotalPages(int64(len(statements)))
	statements = pagination.Slice(statements, page)

	s.LogDebug(ctx, "Ledger generated", slog.Int("statements", len(statements)))
	return &dto.LedgerResponse{Statements: statements, TotalPages: totalPages}, nil
}

// GetEntryStatistics returns the per-month entry counts for a year.
func (s *reportingService) GetEntryStatistics(ctx context.Context, year int) (*domain.EntryStatistics, error) {
	monthly, err := s.reportingRepo.MonthlyEntryCounts(ctx, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to count entries by month", slog.Int("year", year))
		return nil, fmt.Errorf("failed to count entries for year %d: %w", year, err)
	}

	stats := &domain.EntryStatistics{Year: year, Monthly: monthly}
	for _, m := range monthly {
		stats.Total += m.Count
	}
	return stats, nil
}

func reverseLines(lines []domain.LedgerLine) {
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
}
