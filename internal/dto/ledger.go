package dto

import "time"

// LedgerQuery bounds an account activity query. Nil bounds are open-ended.
type LedgerQuery struct {
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
}
