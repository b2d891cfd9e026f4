package accounting

import (
	"fmt"

	"github.com/altaerp/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Delta returns the balance change a posting causes on an account of the
// given type, following the normal-side convention:
//
//	ASSET / NEGATIVE_RESULT increase with debit  -> delta = debit - credit
//	LIABILITY / EQUITY / POSITIVE_RESULT increase with credit -> delta = credit - debit
func Delta(debit, credit decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
	if accountType.CreditNormal() {
		return credit.Sub(debit), nil
	}
	return debit.Sub(credit), nil
}

// PostingDelta is Delta applied to a stored posting line.
func PostingDelta(p domain.Posting, accountType domain.AccountType) (decimal.Decimal, error) {
	return Delta(p.Debit, p.Credit, accountType)
}

// BalanceBefore recovers the account balance as it stood immediately before
// the posting was applied, from the posting's resulting-balance snapshot.
func BalanceBefore(p domain.Posting, accountType domain.AccountType) (decimal.Decimal, error) {
	delta, err := PostingDelta(p, accountType)
	if err != nil {
		return decimal.Zero, err
	}
	return p.ResultingBalance.Sub(delta), nil
}
