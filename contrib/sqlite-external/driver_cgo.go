//go:build cgo_sqlite

package sqliteexternal

import (
	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" with database/sql
)

const (
	// DriverName is the database/sql name core/sqlite opens the index with.
	DriverName = "sqlite3"

	// DriverType is recorded in the index meta table as "driver".
	DriverType = "cgo"

	// DriverPackage is printed by "slidedeck version".
	DriverPackage = "github.com/mattn/go-sqlite3"
)
