package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "heromotocorp", NormalizeName("  Hero MotoCorp\n"))
	require.Equal(t, "tvsmotor", NormalizeName("TVS  Motor"))
}

func TestCanonicalize(t *testing.T) {
	canonical := []string{"Hero MotoCorp", "Bajaj Auto", "Maruti Suzuki"}

	// noisy portal spellings collapse onto the canonical entry
	require.Equal(t, "Hero MotoCorp", Canonicalize("HERO MOTOCORP LTD", canonical))
	require.Equal(t, "Bajaj Auto", Canonicalize("BAJAJ AUTO LIMITED", canonical))
	require.Equal(t, "Maruti Suzuki", Canonicalize("Maruti Suzuki India Ltd", canonical))

	// unknown names pass through untouched
	require.Equal(t, "Ola Electric", Canonicalize("Ola Electric", canonical))
	require.Equal(t, "", Canonicalize("", canonical))
}

func TestCanonicalizeIdentity(t *testing.T) {
	canonical := []string{"Hero MotoCorp"}
	require.Equal(t, "Hero MotoCorp", Canonicalize("Hero MotoCorp", canonical))
}
