package accounting

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/gl_engine/internal/apperrors"
	"github.com/finbooks/gl_engine/internal/core/domain"
)

// ValidateEntryLines enforces the journal entry invariants: non-empty lines,
// exactly one strictly positive side per line, line sums matching the
// declared totals, and debit total equal to credit total within tolerance.
func ValidateEntryLines(lines []domain.JournalEntryLine, declaredDebit, declaredCredit decimal.Decimal) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: journal entry must have at least one line", apperrors.ErrValidation)
	}

	debitSum := decimal.Zero
	creditSum := decimal.Zero
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, line.LineNumber)
		}
		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()
		if hasDebit == hasCredit {
			// Both sides set, or neither.
			return fmt.Errorf("%w: line %d must have exactly one of debit or credit", apperrors.ErrValidation, line.LineNumber)
		}
		debitSum = debitSum.Add(line.Debit)
		creditSum = creditSum.Add(line.Credit)
	}

	if debitSum.Sub(declaredDebit).Abs().GreaterThan(domain.BalanceTolerance) {
		return fmt.Errorf("%w: line debits %s do not match declared total debit %s",
			apperrors.ErrValidation, debitSum.String(), declaredDebit.String())
	}
	if creditSum.Sub(declaredCredit).Abs().GreaterThan(domain.BalanceTolerance) {
		return fmt.Errorf("%w: line credits %s do not match declared total credit %s",
			apperrors.ErrValidation, creditSum.String(), declaredCredit.String())
	}
	if debitSum.Sub(creditSum).Abs().GreaterThan(domain.BalanceTolerance) {
		return fmt.Errorf("%w: entry does not balance, debits %s vs credits %s",
			apperrors.ErrValidation, debitSum.String(), creditSum.String())
	}
	return nil
}

// FanOutRows expands a posted journal entry into one immutable ledger row
// per line.
func FanOutRows(entry domain.JournalEntry, now time.Time) []domain.GeneralLedgerRow {
	rows := make([]domain.GeneralLedgerRow, len(entry.Lines))
	for i, line := range entry.Lines {
		rows[i] = domain.GeneralLedgerRow{
			RowID:        uuid.NewString(),
			AccountID:    line.AccountID,
			AccountCode:  line.AccountCode,
			EntryID:      entry.EntryID,
			EntryNumber:  entry.EntryNumber,
			EntryDate:    entry.EntryDate,
			Debit:        line.Debit,
			Credit:       line.Credit,
			FiscalYear:   entry.FiscalYear,
			FiscalPeriod: entry.FiscalPeriod,
			CreatedAt:    now,
		}
	}
	return rows
}

// ReversingRows builds the void fan-out: one row per line with debit and
// credit swapped, entry number suffixed "-VOID", dated on the original entry
// date so the reversal lands in the same fiscal period.
func ReversingRows(entry domain.JournalEntry, now time.Time) []domain.GeneralLedgerRow {
	rows := make([]domain.GeneralLedgerRow, len(entry.Lines))
	for i, line := range entry.Lines {
		rows[i] = domain.GeneralLedgerRow{
			RowID:        uuid.NewString(),
			AccountID:    line.AccountID,
			AccountCode:  line.AccountCode,
			EntryID:      entry.EntryID,
			EntryNumber:  entry.EntryNumber + "-VOID",
			EntryDate:    entry.EntryDate,
			Debit:        line.Credit,
			Credit:       line.Debit,
			FiscalYear:   entry.FiscalYear,
			FiscalPeriod: entry.FiscalPeriod,
			CreatedAt:    now,
		}
	}
	return rows
}

// DirectedNet returns the row's net in the account's increasing direction:
// debit minus credit for debit-normal accounts, credit minus debit for
// credit-normal ones.
func DirectedNet(row domain.GeneralLedgerRow, side domain.BalanceSide) decimal.Decimal {
	net := row.Debit.Sub(row.Credit)
	if side == domain.CreditNormal {
		return net.Neg()
	}
	return net
}

// SortRows orders ledger rows by (entry date, entry number, row ID). The
// three-key tie-break keeps running balances deterministic even for
// same-day, same-entry-number rows.
func SortRows(rows []domain.GeneralLedgerRow) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].EntryDate.Equal(rows[j].EntryDate) {
			return rows[i].EntryDate.Before(rows[j].EntryDate)
		}
		if rows[i].EntryNumber != rows[j].EntryNumber {
			return rows[i].EntryNumber < rows[j].EntryNumber
		}
		return rows[i].RowID < rows[j].RowID
	})
}

// FoldRunningBalance computes the running balance over sorted rows starting
// from an opening balance, in the account's increasing direction.
func FoldRunningBalance(opening decimal.Decimal, rows []domain.GeneralLedgerRow, side domain.BalanceSide) []domain.LedgerLine {
	lines := make([]domain.LedgerLine, len(rows))
	balance := opening
	for i, row := range rows {
		balance = balance.Add(DirectedNet(row, side))
		lines[i] = domain.LedgerLine{GeneralLedgerRow: row, RunningBalance: balance}
	}
	return lines
}

// SumDirectedNet folds rows into a single directed net total.
func SumDirectedNet(rows []domain.GeneralLedgerRow, side domain.BalanceSide) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(DirectedNet(row, side))
	}
	return total
}
