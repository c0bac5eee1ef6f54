package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	require.NotNil(t, Location)
	require.Equal(t, "Asia/Kolkata", Location.String())
}

func TestDate(t *testing.T) {
	d := Date(2024, time.April, 1)
	require.Equal(t, 2024, d.Year())
	require.Equal(t, time.April, d.Month())
	require.Equal(t, 1, d.Day())
	require.Equal(t, Location, d.Location())
}
