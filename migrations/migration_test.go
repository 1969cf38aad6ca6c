package migrations

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllMigrationsAreOrderedAndReversible(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)

	names := make([]string, len(all))
	seen := map[string]bool{}
	for i, def := range all {
		names[i] = def.Name
		assert.False(t, seen[def.Name], "duplicate migration %s", def.Name)
		seen[def.Name] = true
		assert.NotNil(t, def.Up, def.Name)
		assert.NotNil(t, def.Down, def.Name)
	}
	assert.True(t, sort.StringsAreSorted(names), "registration order follows the timestamp prefix")
}

func TestFindMigration(t *testing.T) {
	m := &Migrator{}
	m.AddMigration(All()...)

	require.NotNil(t, m.findMigration("2025_01_02_000001_create_matches_table"))
	assert.Nil(t, m.findMigration("2020_01_01_000000_unknown"))
}
