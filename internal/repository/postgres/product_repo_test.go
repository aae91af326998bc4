package postgres

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The sink's INSERT targets must exist in the schema migrations, or a fresh
// database cannot serve it.
func TestMigrations_CoverSinkTables(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "db", "migrations")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var up, down strings.Builder
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			up.Write(data)
		case strings.HasSuffix(e.Name(), ".down.sql"):
			down.Write(data)
		}
	}

	for _, table := range []string{"packaged_products", "fresh_produce"} {
		assert.Contains(t, up.String(), "CREATE TABLE IF NOT EXISTS "+table, "missing up migration for %s", table)
		assert.Contains(t, down.String(), "DROP TABLE IF EXISTS "+table, "missing down migration for %s", table)
	}

	// Columns the sink binds must be created.
	for _, column := range []string{
		"sl_no", "brand", "mrp", "manufacturing_date", "expiry_date",
		"count", "expired", "expected_life_span", "produce", "freshness_score",
	} {
		assert.Contains(t, up.String(), column)
	}

	// sl_no is assigned as MAX+1; the unique constraint is what turns a
	// concurrent collision into the duplicate-key acknowledgement.
	assert.Contains(t, up.String(), "sl_no INTEGER NOT NULL UNIQUE")
}
