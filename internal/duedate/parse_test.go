package duedate

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

// a Wednesday afternoon
var now = time.Date(2025, 10, 15, 16, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want time.Time
	}{
		{"today", []string{"today", "ToDay", "tod", "now", "0"}, day(2025, 10, 15)},
		{"tomorrow", []string{"tomorrow", "tom", "1", "+1", "in 1 day", "1d", "1 day"}, day(2025, 10, 16)},
		{"yesterday", []string{"yesterday", "yday", "-1", "1 day ago", "1d ago"}, day(2025, 10, 14)},
		{"week", []string{"7", "in 7 days", "1w", "1 week", "in 1 weeks"}, day(2025, 10, 22)},
		{"month", []string{"1m", "in 1 month"}, day(2025, 11, 14)},
		{"friday", []string{"fri", "friday", "Friday"}, day(2025, 10, 17)},
		{"monday", []string{"mon", "monday"}, day(2025, 10, 20)},
		{"same weekday means next week", []string{"wed", "wednesday"}, day(2025, 10, 22)},
		{"absolute", []string{"2025-12-03", "3/12/25", "03/12/2025", "3-12-2025", "3 Dec 2025", "3 december 2025", "Dec 3 2025"}, day(2025, 12, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			for _, arg := range tt.args {
				got, err := Parse(arg, now)
				is.NoErr(err)
				is.True(got.Equal(tt.want))
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	is := is.New(t)
	for _, arg := range []string{"", "soon", "in 1 wek", "31/02/2025", "3 dex 2025"} {
		_, err := Parse(arg, now)
		is.True(err != nil)
	}
}

func Test_parseDayOffset(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"in 11", 11, false},
		{"in 231", 231, false},
		{"2 years", 730, false},
		{"in 1wek", 0, true},
		{"days", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			is := is.New(t)
			got, err := parseDayOffset(tt.input)
			is.Equal(err != nil, tt.wantErr)
			is.Equal(got, tt.want)
		})
	}
}

func TestFormat(t *testing.T) {
	is := is.New(t)
	is.Equal(Format(day(2025, 1, 9)), "2025-01-09")

	back, err := Parse(Format(day(2025, 1, 9)), now)
	is.NoErr(err)
	is.True(back.Equal(day(2025, 1, 9)))
}
