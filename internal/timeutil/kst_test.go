package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDateMidnightKST(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	assert.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 1, d.Day())
	assert.Equal(t, 0, d.Hour())

	_, off := d.Zone()
	assert.Equal(t, 9*60*60, off)
}

func TestSameDayAcrossZones(t *testing.T) {
	// 2024-06-01 23:30 KST == 2024-06-01 14:30 UTC
	kst := time.Date(2024, 6, 1, 23, 30, 0, 0, KST)
	utc := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)
	assert.True(t, SameDay(kst, utc))

	// 2024-06-01 16:00 UTC is already 2024-06-02 in KST
	late := time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC)
	assert.False(t, SameDay(kst, late))
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2024, 6, 1, 18, 45, 12, 0, KST)
	got := StartOfDay(in)
	assert.Equal(t, "2024-06-01", FormatDate(got))
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
}

func TestIsWeekend(t *testing.T) {
	sat, _ := ParseDate("2024-06-01")
	sun, _ := ParseDate("2024-06-02")
	mon, _ := ParseDate("2024-06-03")
	assert.True(t, IsWeekend(sat))
	assert.True(t, IsWeekend(sun))
	assert.False(t, IsWeekend(mon))
}
