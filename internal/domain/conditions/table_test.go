package conditions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupKnownCodes(t *testing.T) {
	require.Equal(t, Condition{Description: "Clear sky", Icon: "01d"}, Lookup(0))
	require.Equal(t, Condition{Description: "Fog", Icon: "50d"}, Lookup(45))
	require.Equal(t, Condition{Description: "Thunderstorm with heavy hail", Icon: "11d"}, Lookup(99))
	require.Len(t, table, 28)
}

func TestLookupFallsBackForUnknownCodes(t *testing.T) {
	for _, code := range []int{-1, 4, 44, 50, 100, 1000} {
		require.False(t, Known(code), "code %d", code)
		require.Equal(t, Unknown, Lookup(code), "code %d", code)
	}
	require.Equal(t, "Unknown", Unknown.Description)
	require.Equal(t, "01d", Unknown.Icon)
}

func TestIconURL(t *testing.T) {
	require.Equal(t, "https://openweathermap.org/img/wn/10d@4x.png", IconURL("", "10d", IconLarge))
	require.Equal(t, "https://cdn.example.com/icons/10d.png", IconURL("https://cdn.example.com/icons/", "10d", IconSmall))
}
