package accounts

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to DOBOT_TEST_DATABASE_URL or skips the test.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("DOBOT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("DOBOT_TEST_DATABASE_URL not set")
	}
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := Migrations.ReadFile(MigrationsDir + "/0001_create_accounts.up.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM accounts WHERE id LIKE 'test-%'`)
	require.NoError(t, err)
	return db
}

func TestSQLStoreUpsertAndGet(t *testing.T) {
	db := openTestDB(t)
	store := NewSQLStore(db)

	require.NoError(t, store.Upsert(t.Context(), Account{ID: "test-main", Name: "Main", Token: "tok-1"}))
	require.NoError(t, store.Upsert(t.Context(), Account{ID: "test-main", Name: "Main", Token: "tok-2"}))

	a, err := store.Get(t.Context(), "test-main")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", a.Token)

	_, err = store.Get(t.Context(), "test-missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSeederUpsertsAccounts(t *testing.T) {
	db := openTestDB(t)
	seed := Seeder([]Account{{ID: "test-seeded", Token: "tok"}})
	require.NoError(t, seed.Seed(t.Context(), db))

	a, err := NewSQLStore(db).Get(t.Context(), "test-seeded")
	require.NoError(t, err)
	assert.Equal(t, "tok", a.Token)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := Migrations.ReadDir(MigrationsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
