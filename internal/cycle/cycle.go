// Package cycle does statement-cycle date arithmetic for credit cards.
//
// Every function takes its reference date explicitly; nothing here reads the
// clock. Dates are treated as calendar days in the location of the input.
package cycle

import (
	"fmt"
	"math"
	"time"

	"card-advisor/internal/domain"
)

const (
	MinGraceDays = 15
	MaxGraceDays = 35
)

// StatementClose returns the most recent statement close on or before ref.
// closeDay is clamped to the last day of short months.
func StatementClose(closeDay int, ref time.Time) (time.Time, error) {
	if err := validateDay("close day", closeDay); err != nil {
		return time.Time{}, err
	}
	ref = dateOf(ref)
	stmt := clampDate(ref.Year(), ref.Month(), closeDay, ref.Location())
	if stmt.After(ref) {
		prev := firstOfMonth(ref, -1)
		stmt = clampDate(prev.Year(), prev.Month(), closeDay, ref.Location())
	}
	return stmt, nil
}

// NextStatementClose returns the close of the cycle a purchase on date lands
// on: the close on date itself, otherwise the first one after it.
func NextStatementClose(closeDay int, date time.Time) (time.Time, error) {
	last, err := StatementClose(closeDay, date)
	if err != nil {
		return time.Time{}, err
	}
	if last.Equal(dateOf(date)) {
		return last, nil
	}
	next := firstOfMonth(last, 1)
	return clampDate(next.Year(), next.Month(), closeDay, last.Location()), nil
}

// PaymentDue returns the due date for the statement that closed on closeDate.
// closeDate must be the already computed close; it is never recomputed here.
//
// The due date falls in the month after the close month, unless dueDay is
// later in the month than closeDay, in which case it falls in the close month
// itself. The result is always strictly after closeDate.
func PaymentDue(closeDay, dueDay int, closeDate time.Time) (time.Time, error) {
	if err := validateDay("close day", closeDay); err != nil {
		return time.Time{}, err
	}
	if err := validateDay("due day", dueDay); err != nil {
		return time.Time{}, err
	}
	closeDate = dateOf(closeDate)
	loc := closeDate.Location()

	var due time.Time
	if dueDay > closeDay {
		due = clampDate(closeDate.Year(), closeDate.Month(), dueDay, loc)
	} else {
		next := firstOfMonth(closeDate, 1)
		due = clampDate(next.Year(), next.Month(), dueDay, loc)
	}
	// clamping in a short month can pull a same-month due date onto the close
	if !due.After(closeDate) {
		next := firstOfMonth(closeDate, 1)
		due = clampDate(next.Year(), next.Month(), dueDay, loc)
	}
	return due, nil
}

// NextPaymentDue returns the close and due dates of the cycle a purchase on
// date belongs to. The due date is never before date.
func NextPaymentDue(closeDay, dueDay int, date time.Time) (closeDate, due time.Time, err error) {
	closeDate, err = NextStatementClose(closeDay, date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	due, err = PaymentDue(closeDay, dueDay, closeDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return closeDate, due, nil
}

// GracePeriod is the whole number of days from closeDate to dueDate.
func GracePeriod(closeDate, dueDate time.Time) int {
	return calendarDays(closeDate, dueDate)
}

// GraceWarning returns a data-quality message when days is outside the usual
// 15-35 day window, or "" when it is fine.
func GraceWarning(days int) string {
	if days >= MinGraceDays && days <= MaxGraceDays {
		return ""
	}
	return fmt.Sprintf("grace period of %d days is outside the usual %d-%d day range", days, MinGraceDays, MaxGraceDays)
}

// GraceDays derives the grace length for a close/due day pair, measured from
// the most recent close on or before ref.
func GraceDays(closeDay, dueDay int, ref time.Time) (int, error) {
	closeDate, err := StatementClose(closeDay, ref)
	if err != nil {
		return 0, err
	}
	due, err := PaymentDue(closeDay, dueDay, closeDate)
	if err != nil {
		return 0, err
	}
	return GracePeriod(closeDate, due), nil
}

// FloatDays is the ceiling of days between purchase and the due date of the
// statement the purchase will appear on. It also returns that due date.
func FloatDays(purchase time.Time, closeDay, dueDay int) (int, time.Time, error) {
	_, due, err := NextPaymentDue(closeDay, dueDay, purchase)
	if err != nil {
		return 0, time.Time{}, err
	}
	p := wallClockUTC(purchase)
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	days := int(math.Ceil(d.Sub(p).Hours() / 24))
	if days < 0 {
		days = 0
	}
	return days, due, nil
}

func validateDay(name string, day int) error {
	if day < 1 || day > 31 {
		return fmt.Errorf("%w: %s %d not in 1-31", domain.ErrContractViolation, name, day)
	}
	return nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// firstOfMonth returns the first day of the month offset months from t.
func firstOfMonth(t time.Time, offset int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(offset), 1, 0, 0, 0, 0, t.Location())
}

func clampDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// calendarDays counts days between the calendar dates of a and b, ignoring DST.
func calendarDays(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func wallClockUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
