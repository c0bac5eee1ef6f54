package commands

import (
	"database/sql"
	"log/slog"
	"os"
	"vahan-dashboard/lib/configutil"
	"vahan-dashboard/lib/scrapers/vahan"
	"vahan-dashboard/lib/serviceutil"
	"vahan-dashboard/lib/sqliteutil"
	"vahan-dashboard/lib/telemetry"
	"vahan-dashboard/services/dashboard"
	"vahan-dashboard/services/registry"
	"vahan-dashboard/services/registry/db"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var (
	serveDb   *string
	servePort *int
)

func init() {
	serveDb = serveCmd.Flags().String("db", "vahan.db", "The database to serve registration data from.")
	servePort = serveCmd.Flags().Int("port", 8111, "The port to serve the dashboard on.")
	rootCmd.AddCommand(serveCmd)
}

// openStore opens the file-backed store, falling back to an in-memory
// database when it cannot be opened. The dashboard must come up and
// serve whatever the initial refresh fetches even with an unusable db
// path, losing only persistence across restarts.
func openStore(path string) (*sql.DB, error) {
	database, err := sqliteutil.OpenDB(db.Schema, path)
	if err == nil {
		return database, nil
	}
	slog.Warn("could not open store, serving from an in-memory database", "path", path, "err", err)
	return sqliteutil.OpenDB(db.Schema, ":memory:")
}

var serveCmd = &cobra.Command{
	Use:   "serve [--db <path/to/vahan.db>] [--port <port>]",
	Short: "Serves the investor dashboard, refreshing data on startup.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("failed to read config", err)
		}

		database, err := openStore(*serveDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		store := registry.NewService(database)
		service := newIngestion(cfg, store)

		status, err := service.Refresh(cmd.Context(), vahan.Range{
			StartYear: cfg.StartYear,
			EndYear:   cfg.EndYear,
		})
		if err != nil {
			slog.Warn("initial refresh failed, dashboard starts empty", "err", err)
		} else {
			slog.Info("initial refresh complete", "origin", status.Origin, "rows", status.Rows)
		}

		telemetry.InstrumentPerfStats(cmd.Context())
		serviceutil.StartHttpServer(*servePort, dashboard.NewService(store, service).Router())
	},
}
