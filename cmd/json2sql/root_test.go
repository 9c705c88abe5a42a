package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"json2sql/internal/db"
	"json2sql/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eventMon.db")
	t.Setenv("DB_PATH", path)
	t.Setenv("EAPI_METHOD", "http")
	t.Setenv("POLL_INTERVAL", "5")
	return path
}

func TestRootCreatesAndDropsScratchTable(t *testing.T) {
	path := tempDB(t)

	_, err := run(t, "-d")
	require.NoError(t, err)

	store, err := db.Open(path, false)
	require.NoError(t, err)
	defer store.Close()
	exists, err := store.TableExists("test")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTableCreateDrop(t *testing.T) {
	path := tempDB(t)

	_, err := run(t, "table", "create", "alias(x, y)")
	require.NoError(t, err)

	store, err := db.Open(path, false)
	require.NoError(t, err)
	exists, _ := store.TableExists("alias")
	assert.True(t, exists)
	store.Close()

	_, err = run(t, "table", "drop", "alias")
	require.NoError(t, err)

	store, err = db.Open(path, false)
	require.NoError(t, err)
	defer store.Close()
	exists, _ = store.TableExists("alias")
	assert.False(t, exists)
}

func TestSamplesPrintsTable(t *testing.T) {
	path := tempDB(t)

	store, err := db.Open(path, false)
	require.NoError(t, err)
	require.NoError(t, store.InsertRow(&models.ErrorSample{Interface: "Et7", FCS: 12, Symbol: 3}, ""))
	store.Close()

	out, err := run(t, "samples", "--interface", "Et7")
	require.NoError(t, err)
	assert.Contains(t, out, "Et7")
	assert.Contains(t, out, "12")

	out, err = run(t, "samples", "--latest")
	require.NoError(t, err)
	assert.Contains(t, out, "Et7")
}

func TestPollRejectsUnknownSource(t *testing.T) {
	tempDB(t)
	_, err := run(t, "poll", "--source", "carrier-pigeon")
	assert.ErrorContains(t, err, "unknown source")
}

func TestBadConfigFails(t *testing.T) {
	tempDB(t)
	t.Setenv("EAPI_METHOD", "telnet")
	_, err := run(t)
	assert.Error(t, err)
}
