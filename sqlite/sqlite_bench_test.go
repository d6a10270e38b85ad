package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelinbingl/emlak/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkWALMode compares write performance between WAL and rollback journal modes.
// This simulates a batch run storing one listing per parsed page.
func BenchmarkWALMode(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkListingInserts(b, false)
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkListingInserts(b, true)
	})
}

func benchmarkListingInserts(b *testing.B, useWAL bool) {
	b.Helper()

	dbPath := filepath.Join(b.TempDir(), "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())

	ctx := context.Background()
	if !useWAL {
		_, err := db.ExecContext(ctx, "PRAGMA journal_mode = DELETE")
		require.NoError(b, err)
	}

	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	svc := sqlite.NewListingService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := svc.CreateListing(ctx, newListing(fmt.Sprint(i), "Tekirdağ")); err != nil {
			b.Fatal(err)
		}
	}
}
