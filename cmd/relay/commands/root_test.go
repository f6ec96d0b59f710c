package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTable = `
routes:
  - name: books.show
    pattern: /books/:id
    methods: [GET]
    handler: books.show
  - name: archive.show
    pattern: /archive/:year(/:month)
    methods: [GET]
    handler: archive.show
`

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newCheckCmd()
	switch args[0] {
	case "routes":
		cmd = newRoutesCmd()
	case "url":
		cmd = newURLCmd()
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args[1:])
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckCmd(t *testing.T) {
	t.Run("ValidTable", func(t *testing.T) {
		path := writeTable(t, testTable)
		out, err := runCommand(t, "check", "-c", path)
		require.NoError(t, err)
		assert.Contains(t, out, "2 routes, 2 named")
	})

	t.Run("BadPattern", func(t *testing.T) {
		path := writeTable(t, `
routes:
  - pattern: /broken/(:x
    methods: [GET]
    handler: h
`)
		_, err := runCommand(t, "check", "-c", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unbalanced")
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := runCommand(t, "check", "-c", filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestRoutesCmd(t *testing.T) {
	path := writeTable(t, testTable)
	out, err := runCommand(t, "routes", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "/books/:id")
	assert.Contains(t, out, "books.show")
	assert.Contains(t, out, "GET")
}

func TestURLCmd(t *testing.T) {
	t.Run("Simple", func(t *testing.T) {
		path := writeTable(t, testTable)
		out, err := runCommand(t, "url", "-c", path, "books.show", "id=42")
		require.NoError(t, err)
		assert.Equal(t, "/books/42\n", out)
	})

	t.Run("OptionalStripped", func(t *testing.T) {
		path := writeTable(t, testTable)
		out, err := runCommand(t, "url", "-c", path, "archive.show", "year=2024")
		require.NoError(t, err)
		assert.Equal(t, "/archive/2024\n", out)
	})

	t.Run("UnknownName", func(t *testing.T) {
		path := writeTable(t, testTable)
		_, err := runCommand(t, "url", "-c", path, "ghost")
		assert.Error(t, err)
	})

	t.Run("MalformedParam", func(t *testing.T) {
		path := writeTable(t, testTable)
		_, err := runCommand(t, "url", "-c", path, "books.show", "id")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key=value")
	})
}
