// Package sqliteexternal provides the optional CGO SQLite driver.
//
// To use the CGO driver (github.com/mattn/go-sqlite3) for the scripture index:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./cmd/slidedeck
//
// Without the tag the index is served by the pure Go modernc.org/sqlite
// driver. See github.com/focory-beep/sermon-slide-generator/core/sqlite.
//
// Use this package when:
//   - Index builds over the full corpus need to be faster
//   - You already have CGO in your build pipeline
package sqliteexternal
