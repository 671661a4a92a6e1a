package cycle

import (
	"errors"
	"testing"
	"time"

	"card-advisor/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStatementClose(t *testing.T) {
	tests := []struct {
		name     string
		closeDay int
		ref      time.Time
		want     time.Time
	}{
		{name: "ref after close day", closeDay: 25, ref: day(2025, time.October, 28), want: day(2025, time.October, 25)},
		{name: "ref on close day", closeDay: 25, ref: day(2025, time.October, 25), want: day(2025, time.October, 25)},
		{name: "ref before close day uses previous month", closeDay: 25, ref: day(2025, time.October, 3), want: day(2025, time.September, 25)},
		{name: "year rollover", closeDay: 25, ref: day(2026, time.January, 5), want: day(2025, time.December, 25)},
		{name: "clamp to february", closeDay: 31, ref: day(2025, time.February, 28), want: day(2025, time.February, 28)},
		{name: "clamp leap february", closeDay: 30, ref: day(2024, time.March, 1), want: day(2024, time.February, 29)},
		{name: "short month before clamp day", closeDay: 31, ref: day(2025, time.February, 15), want: day(2025, time.January, 31)},
		{name: "time of day ignored", closeDay: 10, ref: time.Date(2025, time.May, 10, 23, 59, 0, 0, time.UTC), want: day(2025, time.May, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StatementClose(tt.closeDay, tt.ref)
			if err != nil {
				t.Fatalf("StatementClose error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("StatementClose(%d, %s) = %s, want %s", tt.closeDay, tt.ref.Format("2006-01-02"), got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestPaymentDue(t *testing.T) {
	tests := []struct {
		name      string
		closeDay  int
		dueDay    int
		closeDate time.Time
		want      time.Time
	}{
		{name: "due next month", closeDay: 25, dueDay: 10, closeDate: day(2025, time.October, 25), want: day(2025, time.November, 10)},
		{name: "due next year", closeDay: 25, dueDay: 10, closeDate: day(2025, time.December, 25), want: day(2026, time.January, 10)},
		{name: "due later in same month", closeDay: 3, dueDay: 28, closeDate: day(2025, time.October, 3), want: day(2025, time.October, 28)},
		{name: "equal days roll to next month", closeDay: 15, dueDay: 15, closeDate: day(2025, time.March, 15), want: day(2025, time.April, 15)},
		{name: "due day clamped in february", closeDay: 31, dueDay: 30, closeDate: day(2025, time.January, 31), want: day(2025, time.February, 28)},
		{name: "same-month clamp collides with close", closeDay: 28, dueDay: 31, closeDate: day(2025, time.February, 28), want: day(2025, time.March, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PaymentDue(tt.closeDay, tt.dueDay, tt.closeDate)
			if err != nil {
				t.Fatalf("PaymentDue error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("PaymentDue = %s, want %s", got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
			if got.Before(tt.closeDate) {
				t.Errorf("PaymentDue %s is before close %s", got.Format("2006-01-02"), tt.closeDate.Format("2006-01-02"))
			}
		})
	}
}

func TestPaymentDue_NeverBeforeCloseAcrossYear(t *testing.T) {
	for closeDay := 1; closeDay <= 31; closeDay++ {
		for dueDay := 1; dueDay <= 31; dueDay++ {
			for m := time.January; m <= time.December; m++ {
				closeDate, err := StatementClose(closeDay, day(2025, m, 28))
				if err != nil {
					t.Fatalf("StatementClose(%d): %v", closeDay, err)
				}
				due, err := PaymentDue(closeDay, dueDay, closeDate)
				if err != nil {
					t.Fatalf("PaymentDue(%d, %d): %v", closeDay, dueDay, err)
				}
				if !due.After(closeDate) {
					t.Fatalf("PaymentDue(%d, %d, %s) = %s, not after close", closeDay, dueDay, closeDate.Format("2006-01-02"), due.Format("2006-01-02"))
				}
				if g := GracePeriod(closeDate, due); g > 62 {
					t.Fatalf("grace %d days for close=%d due=%d looks like a skipped month", g, closeDay, dueDay)
				}
			}
		}
	}
}

func TestInvalidDayIsContractViolation(t *testing.T) {
	ref := day(2025, time.June, 1)
	if _, err := StatementClose(0, ref); !errors.Is(err, domain.ErrContractViolation) {
		t.Errorf("StatementClose(0) error = %v, want ErrContractViolation", err)
	}
	if _, err := StatementClose(32, ref); !errors.Is(err, domain.ErrContractViolation) {
		t.Errorf("StatementClose(32) error = %v, want ErrContractViolation", err)
	}
	if _, err := PaymentDue(25, 0, ref); !errors.Is(err, domain.ErrContractViolation) {
		t.Errorf("PaymentDue(due=0) error = %v, want ErrContractViolation", err)
	}
	if _, _, err := FloatDays(ref, 25, 40); !errors.Is(err, domain.ErrContractViolation) {
		t.Errorf("FloatDays(due=40) error = %v, want ErrContractViolation", err)
	}
}

func TestGracePeriodAndWarning(t *testing.T) {
	g := GracePeriod(day(2025, time.October, 25), day(2025, time.November, 10))
	if g != 16 {
		t.Errorf("GracePeriod = %d, want 16", g)
	}
	if w := GraceWarning(g); w != "" {
		t.Errorf("GraceWarning(16) = %q, want empty", w)
	}
	if w := GraceWarning(45); w == "" {
		t.Error("GraceWarning(45) should warn")
	}
	if w := GraceWarning(10); w == "" {
		t.Error("GraceWarning(10) should warn")
	}

	days, err := GraceDays(25, 20, day(2025, time.October, 28))
	if err != nil {
		t.Fatalf("GraceDays error: %v", err)
	}
	if days != 26 {
		t.Errorf("GraceDays(25, 20) = %d, want 26", days)
	}
}

func TestFloatDays(t *testing.T) {
	tests := []struct {
		name     string
		purchase time.Time
		wantDays int
		wantDue  time.Time
	}{
		{name: "before close", purchase: day(2025, time.October, 20), wantDays: 21, wantDue: day(2025, time.November, 10)},
		{name: "on close day", purchase: day(2025, time.October, 25), wantDays: 16, wantDue: day(2025, time.November, 10)},
		{name: "after close rolls to next cycle", purchase: day(2025, time.October, 26), wantDays: 45, wantDue: day(2025, time.December, 10)},
		{name: "partial day rounds up", purchase: time.Date(2025, time.October, 20, 18, 0, 0, 0, time.UTC), wantDays: 21, wantDue: day(2025, time.November, 10)},
		{name: "december purchase", purchase: day(2025, time.December, 30), wantDays: 42, wantDue: day(2026, time.February, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, due, err := FloatDays(tt.purchase, 25, 10)
			if err != nil {
				t.Fatalf("FloatDays error: %v", err)
			}
			if days != tt.wantDays {
				t.Errorf("FloatDays = %d, want %d", days, tt.wantDays)
			}
			if !due.Equal(tt.wantDue) {
				t.Errorf("due = %s, want %s", due.Format("2006-01-02"), tt.wantDue.Format("2006-01-02"))
			}
			if due.Before(tt.purchase) {
				t.Errorf("due %s before purchase", due.Format("2006-01-02"))
			}
		})
	}
}
