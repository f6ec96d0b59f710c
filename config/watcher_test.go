package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yshengliao/relay/config"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTable), 0o644))

	type result struct {
		table *config.RouteTable
		err   error
	}
	results := make(chan result, 4)

	w, err := config.Watch(path, 50*time.Millisecond, func(table *config.RouteTable, err error) {
		results <- result{table, err}
	})
	require.NoError(t, err)
	defer w.Close()

	t.Run("ReloadOnWrite", func(t *testing.T) {
		updated := sampleTable + `
  - pattern: /extra
    methods: [GET]
    handler: extra
`
		require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

		select {
		case got := <-results:
			require.NoError(t, got.err)
			assert.Len(t, got.table.Routes, 4)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for reload")
		}
	})

	t.Run("LoadErrorIsReported", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("routes: ["), 0o644))

		select {
		case got := <-results:
			assert.Error(t, got.err)
			assert.Nil(t, got.table)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for reload")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "routes.yaml")
		require.NoError(t, os.WriteFile(path, []byte(sampleTable), 0o644))

		table, err := config.Load(path)
		require.NoError(t, err)
		assert.Len(t, table.Routes, 3)
	})
}
