package utils

import (
	"testing"
	"time"
)

func TestFormatISTDateTime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "utc instant shifted to IST",
			in:   time.Date(2025, time.March, 19, 10, 0, 0, 0, time.UTC),
			want: "19/03/2025 15:30",
		},
		{
			name: "shift across midnight rolls the date",
			in:   time.Date(2025, time.March, 19, 20, 45, 0, 0, time.UTC),
			want: "20/03/2025 02:15",
		},
		{
			name: "single digit day and month are padded",
			in:   time.Date(2025, time.January, 2, 0, 0, 0, 0, istZone),
			want: "02/01/2025 00:00",
		},
		{
			name: "zero time renders placeholder",
			in:   time.Time{},
			want: "—",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatISTDateTime(tt.in); got != tt.want {
				t.Errorf("FormatISTDateTime() = %q, want %q", got, tt.want)
			}
		})
	}
}
