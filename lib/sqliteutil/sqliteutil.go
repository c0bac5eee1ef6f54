package sqliteutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// OpenDB opens (creating parent directories if necessary) a sqlite
// database at `path` and applies `schema` to it. `:memory:` is accepted
// as a path for throwaway databases.
func OpenDB(schema, path string) (*sql.DB, error) {
	if path != ":memory:" {
		err := os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil && !os.IsExist(err) {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		db.Close()
		return nil, err
	}
	return db, nil
}
