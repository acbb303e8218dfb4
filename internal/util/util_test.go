package util

import (
	"context"
	"errors"
	"testing"
	"time"

	"tradoverse/internal/domain"
)

func TestRetry(t *testing.T) {
	attempts := 0
	targetAttempts := 3

	err := Retry(context.Background(), 5, 0, func() error {
		attempts++
		if attempts < targetAttempts {
			return errors.New("transient error")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Retry returned unexpected error: %v", err)
	}
	if attempts != targetAttempts {
		t.Errorf("Retry called fn %d times, want %d", attempts, targetAttempts)
	}
}

func TestRetryAllFail(t *testing.T) {
	attempts := 0
	maxAttempts := 3

	err := Retry(context.Background(), maxAttempts, 0, func() error {
		attempts++
		return errors.New("persistent error")
	})

	if err == nil {
		t.Fatal("Retry should return error when all attempts fail")
	}
	if attempts != maxAttempts {
		t.Errorf("Retry called fn %d times, want %d", attempts, maxAttempts)
	}
}

func TestRateLimiterNew(t *testing.T) {
	rl := NewRateLimiter(60)
	if rl == nil {
		t.Fatal("NewRateLimiter returned nil")
	}
}

func TestTradingCalendar(t *testing.T) {
	cal := NewTradingCalendar(domain.MarketUS)

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"monday", time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), true},
		{"friday", time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), true},
		{"saturday", time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cal.IsTradingDay(tc.day); got != tc.want {
				t.Errorf("IsTradingDay(%s) = %v, want %v", tc.day.Weekday(), got, tc.want)
			}
		})
	}
}

func TestNextTradingDaySkipsWeekend(t *testing.T) {
	cal := NewTradingCalendar(domain.MarketUS)
	friday := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	got := cal.NextTradingDay(friday)
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC) // Monday
	if !got.Equal(want) {
		t.Errorf("NextTradingDay(friday) = %v, want %v", got, want)
	}
}

func TestTradingDaysCount(t *testing.T) {
	cal := NewTradingCalendar(domain.MarketUS)
	// Mon 2024-01-08 through Sun 2024-01-14: 5 trading days.
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := len(cal.TradingDays(start, end)); got != 5 {
		t.Errorf("TradingDays() returned %d days, want 5", got)
	}
}
