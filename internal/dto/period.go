package dto

import (
	"time"

	"github.com/finbooks/gl_engine/internal/core/domain"
)

// InitializeFiscalYearRequest creates the 12 periods of a fiscal year.
type InitializeFiscalYearRequest struct {
	Year int `json:"year" binding:"required"`
}

// FiscalPeriodResponse is the API representation of a fiscal period.
type FiscalPeriodResponse struct {
	Year      int                 `json:"year"`
	Period    int                 `json:"period"`
	StartDate time.Time           `json:"startDate"`
	EndDate   time.Time           `json:"endDate"`
	Status    domain.PeriodStatus `json:"status"`
}

// ToFiscalPeriodResponses maps domain periods to their API form.
func ToFiscalPeriodResponses(periods []domain.FiscalPeriod) []FiscalPeriodResponse {
	out := make([]FiscalPeriodResponse, len(periods))
	for i, p := range periods {
		out[i] = FiscalPeriodResponse{
			Year:      p.Year,
			Period:    p.Period,
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
			Status:    p.Status,
		}
	}
	return out
}
