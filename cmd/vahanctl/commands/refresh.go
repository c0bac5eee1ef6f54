package commands

import (
	"log/slog"
	"os"
	"time"
	"vahan-dashboard/lib/configutil"
	"vahan-dashboard/lib/scrapers/vahan"
	"vahan-dashboard/lib/serviceutil"
	"vahan-dashboard/lib/sqliteutil"
	"vahan-dashboard/services/ingestion"
	"vahan-dashboard/services/registry"
	"vahan-dashboard/services/registry/db"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

type Config struct {
	BaseUrl     string `json:"base_url"`
	StartYear   int    `json:"start_year"`
	EndYear     int    `json:"end_year"`
	SnapshotDir string `json:"snapshot_dir"`
}

var refreshDb *string

func init() {
	refreshDb = refreshCmd.Flags().String("db", "vahan.db", "The database to write registration data to.")
	rootCmd.AddCommand(refreshCmd)
}

func newIngestion(cfg Config, store registry.Service) *ingestion.Service {
	client := vahan.NewClient(vahan.ClientOptions{
		BaseUrl:     cfg.BaseUrl,
		SnapshotDir: ".dev/resty/vahan",
	})
	return ingestion.NewService(client, store, ingestion.Options{
		SnapshotDir: cfg.SnapshotDir,
	})
}

var refreshCmd = &cobra.Command{
	Use:   "refresh [--db <path/to/vahan.db>]",
	Short: "Scrapes the Vahan portal (or the bundled sample data) and replaces the store.",
	Run: func(cmd *cobra.Command, args []string) {
		// a missing config is fine, the zero value means live portal,
		// default year range, no snapshots
		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("failed to read config", err)
		}

		database, err := sqliteutil.OpenDB(db.Schema, *refreshDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		service := newIngestion(cfg, registry.NewService(database))

		t1 := time.Now()
		status, err := service.Refresh(cmd.Context(), vahan.Range{
			StartYear: cfg.StartYear,
			EndYear:   cfg.EndYear,
		})
		if err != nil {
			serviceutil.Fatal("failed to refresh", err)
		}
		t2 := time.Now()

		slog.Info(
			"refresh complete",
			"origin", status.Origin,
			"rows", status.Rows,
			"store_degraded", status.StoreDegraded,
			"seconds", t2.Sub(t1).Seconds(),
		)
	},
}
