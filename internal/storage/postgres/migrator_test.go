package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_SortedPairs(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"sql/migrations/0002_more.up.sql":   {Data: []byte("CREATE TABLE b (id INT);")},
		"sql/migrations/0002_more.down.sql": {Data: []byte("DROP TABLE b;")},
		"sql/migrations/0001_init.up.sql":   {Data: []byte("CREATE TABLE a (id INT);")},
		"sql/migrations/0001_init.down.sql": {Data: []byte("DROP TABLE a;")},
	}

	migrations, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, int64(1), migrations[0].Version)
	assert.Equal(t, "init", migrations[0].Name)
	assert.Equal(t, "DROP TABLE a;", migrations[0].Down)
	assert.Equal(t, int64(2), migrations[1].Version)
}

func TestLoadMigrations_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string]fstest.MapFS{
		"missing down": {
			"sql/migrations/0001_init.up.sql": {Data: []byte("SELECT 1;")},
		},
		"invalid name": {
			"sql/migrations/init.sql": {Data: []byte("SELECT 1;")},
		},
		"empty body": {
			"sql/migrations/0001_init.up.sql":   {Data: []byte("  ")},
			"sql/migrations/0001_init.down.sql": {Data: []byte("SELECT 1;")},
		},
		"name mismatch": {
			"sql/migrations/0001_init.up.sql":    {Data: []byte("SELECT 1;")},
			"sql/migrations/0001_other.down.sql": {Data: []byte("SELECT 1;")},
		},
		"no files": {},
	}

	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := loadMigrations(fsys)
			require.Error(t, err)
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	migrations, err := loadMigrations(migrationsFS)
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, "kv_entries", migrations[0].Name)
}
