package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodStatus mirrors domain.PeriodStatus for DB storage.
type PeriodStatus string

// FiscalPeriod is the DB representation of a fiscal period.
type FiscalPeriod struct {
	Year      int
	Period    int
	StartDate time.Time
	EndDate   time.Time
	Status    PeriodStatus
	AuditFields
}

// BalanceSnapshot is the DB representation of a snapshot header.
type BalanceSnapshot struct {
	SnapshotID    string
	Year          int
	Period        int
	PeriodEndDate time.Time
	CreatedAt     time.Time
}

// SnapshotBalance is one account's cumulative net within a snapshot.
type SnapshotBalance struct {
	SnapshotID    string
	AccountID     string
	AccountCode   string
	CumulativeNet decimal.Decimal
}
