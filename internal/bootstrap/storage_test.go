package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/qatrack-backend/config"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/snapshot"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	require.NoError(t, config.ParseEnv(cfg))
	cfg.Storage.Driver = driver
	cfg.Storage.File = filepath.Join(t.TempDir(), "state.json")
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "qatrack.db")
	return cfg
}

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	for _, driver := range []string{config.DriverMemory, config.DriverFile, config.DriverSQLite, config.DriverRedis} {
		t.Run(driver, func(t *testing.T) {
			cfg := testConfig(t, driver)
			cfg.Redis.Addr = mr.Addr()

			st, err := OpenStorage(ctx, cfg, nil)
			require.NoError(t, err)
			defer st.Close()

			_, err = st.Load(ctx)
			assert.ErrorIs(t, err, snapshot.ErrNotFound)

			require.NoError(t, st.Save(ctx, []byte(`{"users":[]}`)))
			got, err := st.Load(ctx)
			require.NoError(t, err)
			assert.JSONEq(t, `{"users":[]}`, string(got))

			if st.Pinger != nil {
				assert.NoError(t, st.Pinger.Ping(ctx))
			}
		})
	}
}

func TestOpenStorage_Errors(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(t, "tape")
	_, err := OpenStorage(ctx, cfg, nil)
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	cfg = testConfig(t, config.DriverRedis)
	cfg.Redis.Addr = mr.Addr()
	mr.Close()
	_, err = OpenStorage(ctx, cfg, nil)
	assert.Error(t, err)
}
