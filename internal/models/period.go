package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/planwise/capacity-planning-api/internal/constants"
)

type PeriodKind int

const (
	// PeriodDaily anchors work to an exact calendar day.
	PeriodDaily PeriodKind = iota
	// PeriodMonthly anchors work to a (month, year) pair, the legacy mode.
	PeriodMonthly
)

// Period is the time anchor of an assignment: either a specific calendar day
// or a (month, year) pair. Exactly one representation is set; every consumer
// goes through Effective instead of checking raw fields.
type Period struct {
	Kind  PeriodKind
	Date  time.Time
	Month int
	Year  int
}

// DailyPeriod builds a daily period, truncating the date to midnight UTC.
func DailyPeriod(date time.Time) Period {
	return Period{
		Kind: PeriodDaily,
		Date: time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// MonthlyPeriod builds a legacy monthly period.
func MonthlyPeriod(month, year int) Period {
	return Period{Kind: PeriodMonthly, Month: month, Year: year}
}

var (
	ErrPeriodAmbiguous = errors.New("date and (month, year) are mutually exclusive")
	ErrPeriodMissing   = errors.New("either date or (month and year) is required")
	ErrMonthRange      = errors.New("month must be between 1 and 12")
	ErrYearRange       = fmt.Errorf("year must be between %d and %d", constants.MinYear, constants.MaxYear)
)

// NewPeriod normalizes the two wire representations into a Period. Exactly
// one of date or (month, year) must be present.
func NewPeriod(date *time.Time, month, year *int) (Period, error) {
	hasDate := date != nil
	hasMonthYear := month != nil && year != nil

	switch {
	case hasDate && hasMonthYear:
		return Period{}, ErrPeriodAmbiguous
	case hasDate:
		return DailyPeriod(*date), nil
	case hasMonthYear:
		if *month < 1 || *month > 12 {
			return Period{}, ErrMonthRange
		}
		if *year < constants.MinYear || *year > constants.MaxYear {
			return Period{}, ErrYearRange
		}
		return MonthlyPeriod(*month, *year), nil
	default:
		return Period{}, ErrPeriodMissing
	}
}

// Effective returns the (month, year) the period falls into, regardless of
// representation. Aggregation and monthly capacity checks key on this.
func (p Period) Effective() (month, year int) {
	if p.Kind == PeriodDaily {
		return int(p.Date.Month()), p.Date.Year()
	}
	return p.Month, p.Year
}

// MonthBounds returns the half-open [from, to) range covering the effective
// month, for matching daily rows against a monthly period.
func (p Period) MonthBounds() (from, to time.Time) {
	month, year := p.Effective()
	from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func (p Period) String() string {
	if p.Kind == PeriodDaily {
		return p.Date.Format("2006-01-02")
	}
	return fmt.Sprintf("%d/%d", p.Month, p.Year)
}
