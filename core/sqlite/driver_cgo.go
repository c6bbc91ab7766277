//go:build cgo_sqlite

// CGO SQLite driver using mattn/go-sqlite3, selected with the cgo_sqlite
// build tag:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./cmd/slidedeck
//
// The driver import lives in contrib/sqlite-external so the default build
// carries no CGO dependency.
package sqlite

import (
	sqliteexternal "github.com/focory-beep/sermon-slide-generator/contrib/sqlite-external"
)

const (
	driverName    = sqliteexternal.DriverName
	driverType    = sqliteexternal.DriverType
	driverPackage = sqliteexternal.DriverPackage + " (via contrib/sqlite-external)"
)
