package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePeriodDays(t *testing.T) {
	assert.Equal(t, DefaultPeriodDays, ParsePeriodDays(""))
	assert.Equal(t, 7, ParsePeriodDays("7"))
	assert.Equal(t, DefaultPeriodDays, ParsePeriodDays("abc"))
	assert.Equal(t, DefaultPeriodDays, ParsePeriodDays("-3"))
	assert.Equal(t, MaxPeriodDays, ParsePeriodDays("9999"))
}

func TestPeriodWindow(t *testing.T) {
	start, end := PeriodWindow(7)

	assert.True(t, start.Before(end))
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.WithinDuration(t, time.Now(), end, time.Second)
}

func TestBeginningOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), BeginningOfDay(ts))
}
