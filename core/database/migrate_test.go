package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestListMigrationFilesSortsUpFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0002_b.up.sql":   {},
		"migrations/0001_a.up.sql":   {},
		"migrations/0001_a.down.sql": {},
		"migrations/readme.txt":      {},
	}
	assert.Equal(t, []string{"0001_a.up.sql", "0002_b.up.sql"}, listMigrationFiles(fsys, "migrations"))
	assert.Nil(t, listMigrationFiles(fsys, "missing"))
}

func TestSelectApplied(t *testing.T) {
	files := []string{"0001_a.up.sql", "0002_b.up.sql", "0003_c.up.sql"}
	assert.Equal(t, []string{"0002_b.up.sql", "0003_c.up.sql"}, selectApplied(files, 1, 3))
	assert.Empty(t, selectApplied(files, 3, 3))
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "a,b", summarize([]string{"a", "b"}, 3))
	assert.Equal(t, "a,b,+2", summarize([]string{"a", "b", "c", "d"}, 2))
	assert.Equal(t, "", summarize(nil, 2))
}

func TestConfigURLAndDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "bot", Password: "p@ss", Name: "dobot"}
	assert.True(t, cfg.Enabled())
	assert.Equal(t, "postgres://bot:p%40ss@db:5432/dobot?sslmode=disable", cfg.URL())
	assert.Equal(t, "user=bot password=p@ss host=db port=5432 dbname=dobot sslmode=disable", cfg.DSN())
	assert.False(t, Config{}.Enabled())
}
