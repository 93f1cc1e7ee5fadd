package model

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "09:00", want: 540},
		{input: "00:00", want: 0},
		{input: "23:59", want: 1439},
		{input: "24:00", wantErr: true},
		{input: "09:60", wantErr: true},
		{input: "nine", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestDurationBetween(t *testing.T) {
	tests := []struct {
		start string
		end   string
		want  float64
	}{
		{start: "09:00", end: "09:50", want: 0.75}, // 50 min rounds down to 0.75
		{start: "09:00", end: "10:00", want: 1},
		{start: "09:00", end: "09:08", want: 0.25}, // 8 min rounds up
		{start: "09:00", end: "09:07", want: 0},    // 7 min rounds down
		{start: "23:30", end: "00:30", want: 1},    // crosses midnight
		{start: "", end: "10:00", want: 0},
		{start: "late", end: "10:00", want: 0},
	}

	for _, tt := range tests {
		if got := DurationBetween(tt.start, tt.end); got != tt.want {
			t.Errorf("DurationBetween(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestRoundToQuarterHour(t *testing.T) {
	tests := []struct {
		hours float64
		want  float64
	}{
		{hours: 0.833333, want: 0.75},
		{hours: 0.875, want: 1}, // halfway rounds up
		{hours: 0.124, want: 0},
		{hours: 0.125, want: 0.25},
		{hours: 2.5, want: 2.5},
		{hours: 0, want: 0},
	}

	for _, tt := range tests {
		if got := RoundToQuarterHour(tt.hours); got != tt.want {
			t.Errorf("RoundToQuarterHour(%v) = %v, want %v", tt.hours, got, tt.want)
		}
	}
}
