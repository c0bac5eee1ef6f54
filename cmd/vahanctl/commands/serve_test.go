package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenStoreFallsBackToMemory(t *testing.T) {
	// a regular file where a directory is needed makes the db path unusable
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))

	database, err := openStore(filepath.Join(blocker, "sub", "vahan.db"))
	require.NoError(t, err)
	defer database.Close()

	// the in-memory stand-in must be fully usable, schema included
	_, err = database.Exec(
		`INSERT INTO registrations (date, year, quarter, vehicle_category, manufacturer, registrations, created_at)
		 VALUES ('2023-01-01', 2023, 1, '2W', 'Hero MotoCorp', 42, 0)`,
	)
	require.NoError(t, err)

	var count int64
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM registrations`).Scan(&count))
	require.Equal(t, int64(1), count)
}
