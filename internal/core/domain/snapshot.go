package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is one account's cumulative net (debit minus credit) from
// the beginning of time through a snapshot boundary.
type AccountBalance struct {
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	CumulativeNet decimal.Decimal `json:"cumulativeNet"`
}

// BalanceSnapshot is a per-period checkpoint of cumulative account balances.
// It is derived, rebuildable data: created when a period closes, deleted when
// the period reopens, and never a source of truth. Statement generation uses
// the latest snapshot before a boundary to bound ledger scans.
type BalanceSnapshot struct {
	SnapshotID    string           `json:"snapshotID"` // Primary key (UUID)
	Year          int              `json:"year"`
	Period        int              `json:"period"`
	PeriodEndDate time.Time        `json:"periodEndDate"`
	Accounts      []AccountBalance `json:"accounts"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// NetFor returns the cumulative net for an account ID, or zero if the
// account has no snapshot row.
func (s BalanceSnapshot) NetFor(accountID string) decimal.Decimal {
	for _, b := range s.Accounts {
		if b.AccountID == accountID {
			return b.CumulativeNet
		}
	}
	return decimal.Zero
}
