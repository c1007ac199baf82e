package utils

import (
	"testing"
	"time"
)

func TestDayMillisTruncatesToMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	morning := time.Date(2026, time.March, 15, 8, 30, 45, 0, loc)
	evening := time.Date(2026, time.March, 15, 23, 59, 59, 0, loc)

	if DayMillis(morning) != DayMillis(evening) {
		t.Error("DayMillis() differs for two times on the same day")
	}

	want := time.Date(2026, time.March, 15, 0, 0, 0, 0, loc).UnixMilli()
	if got := DayMillis(morning); got != want {
		t.Errorf("DayMillis() = %d, want %d (midnight)", got, want)
	}
}

func TestDayMillisDependsOnLocation(t *testing.T) {
	utc := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	// Same instant, different zone: the midnight markers must differ.
	if DayMillis(utc) == DayMillis(utc.In(tokyo)) {
		t.Error("DayMillis() is identical across timezones, want zone-relative midnights")
	}
}

func TestDateMillisMatchesDayMillis(t *testing.T) {
	loc := time.UTC
	moment := time.Date(2026, time.March, 15, 18, 0, 0, 0, loc)

	if DateMillis(2026, time.March, 15, loc) != DayMillis(moment) {
		t.Error("DateMillis() != DayMillis() for the same calendar day")
	}
}

func TestFormatParseDayRoundTrip(t *testing.T) {
	loc := time.UTC

	ms := DateMillis(2026, time.March, 5, loc)
	s := FormatDay(ms, loc)
	if s != "2026-03-05" {
		t.Errorf("FormatDay() = %q, want 2026-03-05", s)
	}

	back, err := ParseDay(s, loc)
	if err != nil {
		t.Fatalf("ParseDay() returned unexpected error: %v", err)
	}
	if back != ms {
		t.Errorf("ParseDay(FormatDay(%d)) = %d, want round trip", ms, back)
	}
}

func TestParseDayRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "yesterday", "03/15/2026", "2026-13-40"} {
		if _, err := ParseDay(input, time.UTC); err == nil {
			t.Errorf("ParseDay(%q) returned nil error, want error", input)
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		timezone string
		want     bool
	}{
		{"", true},
		{"Local", true},
		{"UTC", true},
		{"Europe/Moscow", true},
		{"America/New_York", true},
		{"Mars/Olympus", false},
		{"not a zone", false},
	}

	for _, tt := range tests {
		if got := ValidateTimezone(tt.timezone); got != tt.want {
			t.Errorf("ValidateTimezone(%q) = %v, want %v", tt.timezone, got, tt.want)
		}
	}
}

func TestTodayMillisIsMidnightToday(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("LoadLocation() returned unexpected error: %v", err)
	}

	marker := FromMillis(TodayMillis(loc), loc)
	if marker.Hour() != 0 || marker.Minute() != 0 || marker.Second() != 0 {
		t.Errorf("TodayMillis() marker is %v, want midnight", marker)
	}

	now := time.Now().In(loc)
	if marker.Year() != now.Year() || marker.YearDay() != now.YearDay() {
		t.Errorf("TodayMillis() marker falls on %v, want the current day %v", marker, now)
	}
}
