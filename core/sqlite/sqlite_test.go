package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	assert.Equal(t, DriverName(), info.DriverName)
	assert.Equal(t, DriverType(), info.DriverType)
	assert.NotEmpty(t, info.Package)

	switch info.DriverType {
	case "purego":
		assert.False(t, info.IsCGO)
		assert.Equal(t, "sqlite", info.DriverName)
	case "cgo":
		assert.True(t, info.IsCGO)
		assert.Equal(t, "sqlite3", info.DriverName)
	default:
		t.Errorf("unknown driver type: %s", info.DriverType)
	}
}

func TestReadOnlyDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/data/corpus.db", "file:/data/corpus.db?mode=ro"},
		{"/data/찬송가 색인.db", "file:/data/%EC%B0%AC%EC%86%A1%EA%B0%80%20%EC%83%89%EC%9D%B8.db?mode=ro"},
		{"file:/data/corpus.db", "file:/data/corpus.db?mode=ro"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, readOnlyDSN(tt.path))
		})
	}
}

func createVerses(t *testing.T, path string) {
	t.Helper()
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE verses (verse INTEGER PRIMARY KEY, text TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO verses (verse, text) VALUES (?, ?)`, 16, "하나님이 세상을 이처럼 사랑하사")
	require.NoError(t, err)
}

func TestOpenReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "색인 corpus.db")
	createVerses(t, path)

	db, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer db.Close()

	var text string
	require.NoError(t, db.QueryRow(`SELECT text FROM verses WHERE verse = 16`).Scan(&text))
	assert.Equal(t, "하나님이 세상을 이처럼 사랑하사", text)

	_, err = db.Exec(`INSERT INTO verses (verse, text) VALUES (?, ?)`, 17, "x")
	assert.Error(t, err, "read-only handle must reject writes")
}

func TestWithTx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tx.db")
	createVerses(t, path)

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO verses (verse, text) VALUES (?, ?)`, 17, "kept")
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO verses (verse, text) VALUES (?, ?)`, 18, "dropped"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM verses`).Scan(&count))
	assert.Equal(t, 2, count, "rolled back insert must not persist")
}

func TestWithTxCancelled(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "cancel.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err = WithTx(ctx, db, func(*sql.Tx) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
