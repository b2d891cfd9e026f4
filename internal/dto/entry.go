package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/altaerp/ledger_backend/internal/core/domain"
	"github.com/altaerp/ledger_backend/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// PostingInput is one debit or credit line of an entry being created.
type PostingInput struct {
	AccountID string             `json:"accountID" validate:"required"`
	Amount    decimal.Decimal    `json:"amount" validate:"required"`
	Side      domain.PostingSide `json:"side" validate:"required,oneof=DEBIT CREDIT"`
}

// CreateEntryRequest defines the data needed to commit a journal entry.
// DateText optionally carries the client-side "dd/mm/yyyy hh:mmhs" form and
// wins over Date when set.
type CreateEntryRequest struct {
	Date        time.Time      `json:"date"`
	DateText    string         `json:"dateText" validate:"omitempty"`
	Description string         `json:"description" validate:"required"`
	Postings    []PostingInput `json:"postings" validate:"required,min=2,dive"`
}

// ResolveDate returns the entry date, parsing DateText when present.
func (r CreateEntryRequest) ResolveDate() (time.Time, error) {
	if strings.TrimSpace(r.DateText) != "" {
		return dates.ParseEntryDate(r.DateText)
	}
	return r.Date, nil
}

// Validate checks the request shape, including the positive-amount rule the
// struct tags cannot express for decimals.
func (r CreateEntryRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	for _, p := range r.Postings {
		if p.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("posting amount must be positive for account %s", p.AccountID)
		}
	}
	return nil
}

// EntryResponse defines the data returned for a committed entry.
type EntryResponse struct {
	EntryID        string    `json:"entryID"`
	SequenceNumber int64     `json:"sequenceNumber"`
	Date           time.Time `json:"date"`
	Description    string    `json:"description"`
	AuthorID       string    `json:"authorID"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToEntryResponse converts a domain.Entry to its response DTO.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:        e.EntryID,
		SequenceNumber: e.SequenceNumber,
		Date:           e.EntryDate,
		Description:    e.Description,
		AuthorID:       e.AuthorID,
		CreatedAt:      e.CreatedAt,
	}
}
