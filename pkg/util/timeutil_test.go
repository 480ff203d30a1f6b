package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestZoneForFallsBackToOffset(t *testing.T) {
	loc := ZoneFor("Nowhere/Imaginary", 3600)
	ts := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC).In(loc)
	require.Equal(t, 13, ts.Hour())
}

func TestZoneForEmptyIsUTC(t *testing.T) {
	require.Equal(t, time.UTC, ZoneFor("", 0))
}

func TestNowUTC(t *testing.T) {
	require.Equal(t, time.UTC, NowUTC().Location())
}
