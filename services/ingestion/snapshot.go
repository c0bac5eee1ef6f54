package ingestion

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"vahan-dashboard/lib/timezone"
	"vahan-dashboard/services/registry"
)

var snapshotColumns = []string{
	"date", "year", "quarter", "vehicle_category", "manufacturer", "registrations",
}

// WriteCSV writes a batch in the snapshot/export column layout.
func WriteCSV(w *csv.Writer, records []registry.Record) error {
	err := w.Write(snapshotColumns)
	if err != nil {
		return err
	}
	for _, r := range records {
		err = w.Write([]string{
			r.Date.Format("2006-01-02"),
			strconv.Itoa(r.Year()),
			strconv.Itoa(r.Quarter()),
			r.Category,
			r.Manufacturer,
			strconv.FormatInt(r.Count, 10),
		})
		if err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeSnapshot(dir string, records []registry.Record) error {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("vahan_registrations_%s.csv", timezone.Now().Format("20060102_150405"))
	file, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteCSV(csv.NewWriter(file), records)
}
