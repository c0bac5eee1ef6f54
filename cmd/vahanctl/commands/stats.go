package commands

import (
	"fmt"
	"os"
	"vahan-dashboard/lib/serviceutil"
	"vahan-dashboard/lib/sqliteutil"
	"vahan-dashboard/services/registry"
	"vahan-dashboard/services/registry/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var statsDb *string

func init() {
	statsDb = statsCmd.Flags().String("db", "vahan.db", "The database to read registration data from.")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats [--db <path/to/vahan.db>]",
	Short: "Prints summary statistics and growth tables for the stored data.",
	Run: func(cmd *cobra.Command, args []string) {
		database, err := sqliteutil.OpenDB(db.Schema, *statsDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		ctx := cmd.Context()
		store := registry.NewService(database)

		summary, err := store.Summary(ctx)
		if err != nil {
			serviceutil.Fatal("failed to read summary", err)
		}

		overview := table.NewWriter()
		overview.SetOutputMirror(os.Stdout)
		overview.SetTitle("Overview")
		overview.AppendRows([]table.Row{
			{"Records", summary.TotalRecords},
			{"Registrations", summary.TotalRegistrations},
			{"Manufacturers", summary.Manufacturers},
			{"Categories", summary.Categories},
			{"Years", fmt.Sprintf("%d-%d", summary.EarliestYear, summary.LatestYear)},
		})
		overview.Render()

		yoy, err := store.YoYGrowth(ctx, registry.GroupByCategory)
		if err != nil {
			serviceutil.Fatal("failed to compute yoy growth", err)
		}

		growth := table.NewWriter()
		growth.SetOutputMirror(os.Stdout)
		growth.SetTitle("YoY growth by category")
		growth.AppendHeader(table.Row{"Category", "Year", "Registrations", "YoY"})
		for _, g := range yoy {
			pct := "-"
			if g.GrowthPct.Valid {
				pct = fmt.Sprintf("%+.1f%%", g.GrowthPct.Float64)
			}
			growth.AppendRow(table.Row{g.GroupKey, g.Year, g.Current, pct})
		}
		growth.Render()

		top, err := store.TopManufacturers(ctx, 10)
		if err != nil {
			serviceutil.Fatal("failed to read top manufacturers", err)
		}

		leaders := table.NewWriter()
		leaders.SetOutputMirror(os.Stdout)
		leaders.SetTitle("Top manufacturers")
		leaders.AppendHeader(table.Row{"Manufacturer", "Registrations"})
		for _, row := range top {
			leaders.AppendRow(table.Row{row.Manufacturer, row.Total})
		}
		leaders.Render()
	},
}
