package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"json2sql/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *AristaDB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "eventMon.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestOpenConnectionError(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "x.db"), false)
	require.ErrorIs(t, err, ErrConnection)
}

func TestCreateRemoveRoundTrip(t *testing.T) {
	d := openTestDB(t)

	before, err := d.TableExists("test")
	require.NoError(t, err)
	assert.False(t, before)

	require.NoError(t, d.CreateTable("test(x)"))
	exists, err := d.TableExists("test")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, d.RemoveTable("test"))
	after, err := d.TableExists("test")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCreateTableTwice(t *testing.T) {
	d := openTestDB(t)
	require.NoError(t, d.CreateTable("test(x)"))
	assert.NoError(t, d.CreateTable("test(x)"))
}

func TestRemoveMissingTable(t *testing.T) {
	d := openTestDB(t)
	assert.NoError(t, d.RemoveTable("never_created"))
}

// The fragment is interpolated verbatim, so a second statement smuggled in
// the name is executed as well.
func TestCreateTableDoesNotEscapeFragment(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, d.CreateTable("outer(x); CREATE TABLE injected(y)"))

	exists, err := d.TableExists("injected")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreateTableSyntaxErrorPropagates(t *testing.T) {
	d := openTestDB(t)
	assert.Error(t, d.CreateTable("bad name with spaces"))
}

func TestInsertThenSearch(t *testing.T) {
	d := openTestDB(t)
	t0 := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	rows := []models.ErrorSample{
		{Interface: "Et1", FCS: 0, Symbol: 3, PolledAt: t0},
		{Interface: "Et2", FCS: 5, Symbol: 0, PolledAt: t0},
		{Interface: "Et1", FCS: 1, Symbol: 4, PolledAt: t0.Add(5 * time.Second)},
	}
	for i := range rows {
		require.NoError(t, d.InsertRow(&rows[i], ""))
		assert.NotZero(t, rows[i].ID)
	}

	got, err := d.SearchTable(SampleFilter{Interface: "Et1"}, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].FCS)
	assert.Equal(t, int64(4), got[0].Symbol)
	assert.Equal(t, int64(3), got[1].Symbol)

	got, err = d.SearchTable(SampleFilter{Since: t0.Add(time.Second)}, SamplesTable)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rows[2].ID, got[0].ID)

	got, err = d.SearchTable(SampleFilter{Limit: 1}, "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// Filter values are bound as parameters, never spliced into the statement.
func TestSearchTableParameterized(t *testing.T) {
	d := openTestDB(t)
	require.NoError(t, d.InsertRow(&models.ErrorSample{Interface: "Et1"}, ""))

	got, err := d.SearchTable(SampleFilter{Interface: "Et1' OR '1'='1"}, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInsertRowMissingTable(t *testing.T) {
	d := openTestDB(t)
	assert.Error(t, d.InsertRow(&models.ErrorSample{Interface: "Et1"}, "nope"))
}

func TestLatestSamples(t *testing.T) {
	d := openTestDB(t)
	for _, s := range []models.ErrorSample{
		{Interface: "Et2", FCS: 1},
		{Interface: "Et1", FCS: 1},
		{Interface: "Et1", FCS: 9},
	} {
		require.NoError(t, d.InsertRow(&s, ""))
	}

	got, err := d.LatestSamples()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Et1", got[0].Interface)
	assert.Equal(t, int64(9), got[0].FCS)
	assert.Equal(t, "Et2", got[1].Interface)
}

func TestSaveAndLoadStates(t *testing.T) {
	d := openTestDB(t)

	st := models.InterfaceState{Interface: "Et1", LastFCS: 4, ConsecutiveErrors: 1}
	require.NoError(t, d.SaveState(&st))
	st.ConsecutiveErrors = 2
	st.Disabled = true
	require.NoError(t, d.SaveState(&st))

	states, err := d.LoadStates()
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, 2, states["Et1"].ConsecutiveErrors)
	assert.True(t, states["Et1"].Disabled)
}

func TestOpenExistingFileKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventMon.db")
	d, err := Open(path, false)
	require.NoError(t, err)
	require.NoError(t, d.InsertRow(&models.ErrorSample{Interface: "Et1"}, ""))
	require.NoError(t, d.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	d, err = Open(path, false)
	require.NoError(t, err)
	defer d.Close()
	got, err := d.SearchTable(SampleFilter{}, "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestTransactionRollsBack(t *testing.T) {
	d := openTestDB(t)

	err := d.Transaction(func(tx *AristaDB) error {
		require.NoError(t, tx.InsertRow(&models.ErrorSample{Interface: "Et1"}, ""))
		require.NoError(t, tx.SaveState(&models.InterfaceState{Interface: "Et1"}))
		return tx.InsertRow(&models.ErrorSample{Interface: "Et2"}, "nope")
	})
	require.Error(t, err)

	got, err := d.SearchTable(SampleFilter{}, "")
	require.NoError(t, err)
	assert.Empty(t, got)
	states, err := d.LoadStates()
	require.NoError(t, err)
	assert.Empty(t, states)
}

func TestTransactionCommits(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, d.Transaction(func(tx *AristaDB) error {
		return tx.InsertRow(&models.ErrorSample{Interface: "Et1"}, "")
	}))

	got, err := d.SearchTable(SampleFilter{}, "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
