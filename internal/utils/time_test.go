package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: ""},
		{name: "Local returns local", timezone: "Local"},
		{name: "valid timezone UTC", timezone: "UTC"},
		{name: "valid timezone America/Sao_Paulo", timezone: "America/Sao_Paulo"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestDateKey(t *testing.T) {
	sp, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 01:30 UTC on the 2nd is still the 1st in Sao Paulo.
	instant := time.Date(2024, 3, 2, 1, 30, 0, 0, time.UTC)
	if got := DateKey(instant.In(sp)); got != "2024-03-01" {
		t.Errorf("DateKey() = %s, want 2024-03-01", got)
	}
	if got := DateKey(instant); got != "2024-03-02" {
		t.Errorf("DateKey() = %s, want 2024-03-02", got)
	}
}

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "valid", key: "2024-02-29"},
		{name: "invalid day", key: "2023-02-29", wantErr: true},
		{name: "wrong separator", key: "2024/02/29", wantErr: true},
		{name: "empty", key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateKey(tt.key, time.UTC)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Hour() != 0 || got.Minute() != 0 || DateKey(got) != tt.key {
				t.Errorf("ParseDateKey() = %v", got)
			}
			if ValidateDateKey(tt.key) != !tt.wantErr {
				t.Errorf("ValidateDateKey(%q) mismatch", tt.key)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// DST starts on 2024-03-10 in New York.
	start := time.Date(2024, 3, 9, 12, 0, 0, 0, ny)
	got := AddDays(start, 2)
	if DateKey(got) != "2024-03-11" || got.Hour() != 12 {
		t.Errorf("AddDays() = %v, want 2024-03-11 12:00", got)
	}

	back := AddDays(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), -1)
	if DateKey(back) != "2024-02-29" {
		t.Errorf("AddDays(-1) = %s, want 2024-02-29", DateKey(back))
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			name: "same day different hours",
			a:    time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "late evening to early morning",
			a:    time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC),
			b:    time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "across leap day",
			a:    time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want: 2,
		},
		{
			name: "b before a",
			a:    time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
			want: -3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCombineDateAndTime(t *testing.T) {
	tests := []struct {
		name     string
		dateStr  string
		timeStr  string
		wantHour int
		wantMin  int
		wantErr  bool
	}{
		{name: "valid", dateStr: "2026-01-15", timeStr: "14:30", wantHour: 14, wantMin: 30},
		{name: "midnight", dateStr: "2026-01-01", timeStr: "00:00"},
		{name: "invalid date format", dateStr: "2026/01/15", timeStr: "14:30", wantErr: true},
		{name: "invalid time format", dateStr: "2026-01-15", timeStr: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CombineDateAndTime(tt.dateStr, tt.timeStr, time.UTC)
			if (err != nil) != tt.wantErr {
				t.Errorf("CombineDateAndTime() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && (got.Hour() != tt.wantHour || got.Minute() != tt.wantMin) {
				t.Errorf("CombineDateAndTime() = %v", got)
			}
		})
	}
}

func TestValidateTimeFormat(t *testing.T) {
	valid := []string{"00:00", "08:30", "23:59"}
	invalid := []string{"24:00", "8:3", "noon", ""}

	for _, s := range valid {
		if !ValidateTimeFormat(s) {
			t.Errorf("ValidateTimeFormat(%q) = false", s)
		}
	}
	for _, s := range invalid {
		if ValidateTimeFormat(s) {
			t.Errorf("ValidateTimeFormat(%q) = true", s)
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
		{"Europe/London", true},
		{"Invalid/Timezone", false},
		{"not-a-timezone", false},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			if got := ValidateTimezone(tt.timezone); got != tt.want {
				t.Errorf("ValidateTimezone(%q) = %v, want %v", tt.timezone, got, tt.want)
			}
		})
	}
}
