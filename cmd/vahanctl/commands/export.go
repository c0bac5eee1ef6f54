package commands

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"vahan-dashboard/lib/serviceutil"
	"vahan-dashboard/lib/sqliteutil"
	"vahan-dashboard/services/ingestion"
	"vahan-dashboard/services/registry"
	"vahan-dashboard/services/registry/db"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var (
	exportDb  *string
	exportOut *string
)

func init() {
	exportDb = exportCmd.Flags().String("db", "vahan.db", "The database to export registration data from.")
	exportOut = exportCmd.Flags().String("out", "-", "The file to write csv to, '-' for stdout.")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [--db <path/to/vahan.db>] [--out <path/to/output.csv>]",
	Short: "Exports the stored registration data as csv.",
	Run: func(cmd *cobra.Command, args []string) {
		database, err := sqliteutil.OpenDB(db.Schema, *exportDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		records, err := registry.NewService(database).Query(cmd.Context(), registry.Filter{})
		if err != nil {
			serviceutil.Fatal("failed to read registrations", err)
		}

		var out io.Writer = os.Stdout
		if *exportOut != "-" {
			file, err := os.Create(*exportOut)
			if err != nil {
				serviceutil.Fatal("failed to create output file", err)
			}
			defer file.Close()
			out = file
		}

		err = ingestion.WriteCSV(csv.NewWriter(out), records)
		if err != nil {
			serviceutil.Fatal("failed to write csv", err)
		}
		if *exportOut != "-" {
			slog.Info("export complete", "rows", len(records), "file", *exportOut)
		}
	},
}
