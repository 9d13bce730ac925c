package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ems-api/pkg/config"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/ems?sslmode=disable", migrateURL("postgres://u:p@db:5432/ems?sslmode=disable"))
	assert.Equal(t, "pgx5://db/ems", migrateURL("postgresql://db/ems"))
	assert.Equal(t, "pgx5://db/ems", migrateURL("pgx5://db/ems"))
}

// TestKVStore_Integracion requiere TEST_DATABASE_URL apuntando a una base desechable.
func TestKVStore_Integracion(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	require.NoError(t, Migrate(url, zerolog.Nop()))

	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: url}, zerolog.Nop())
	require.NoError(t, err)
	defer pool.Close()

	kv := NewKVStore(pool)
	const key = "ems_test_kv"
	require.NoError(t, kv.Delete(ctx, key))

	got, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, kv.Set(ctx, key, []byte(`{"v":1,"data":[]}`)))
	require.NoError(t, kv.Set(ctx, key, []byte(`{"v":1,"data":[1]}`)))
	got, err = kv.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"v":1,"data":[1]}`, string(got))

	require.NoError(t, kv.Delete(ctx, key))
	got, err = kv.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)
}
