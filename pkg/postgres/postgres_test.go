package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles(t *testing.T) {
	files, err := MigrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_init.sql", files[0])
	assert.IsIncreasing(t, files)
}

func TestInitMigrationCreatesTables(t *testing.T) {
	content, err := fs.ReadFile(migrationsFS, "migrations/001_init.sql")
	require.NoError(t, err)

	for _, table := range []string{"product", "sale_order_line", "production_order", "orderpoint", "tooling", "plan_run", "plan_line"} {
		assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}
