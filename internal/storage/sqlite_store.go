package storage

import "github.com/jmserra/tempo/internal/storage/sqlite"

// SQLiteStore is the default Provider backed by a local SQLite database.
type SQLiteStore = sqlite.Store

func NewSQLiteStore(path string) *SQLiteStore {
	return sqlite.NewStore(path)
}
