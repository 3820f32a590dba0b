package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgingZoneResolvesWithoutZoneinfo(t *testing.T) {
	t.Setenv("ZONEINFO", t.TempDir())

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	_, offset := time.Date(2024, 6, 30, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 5*3600+1800, offset)
}
