package source

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	pmferrors "pmfkit/internal/errors"
)

func openFixtureDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stmts := []string{
		`CREATE TABLE PMF_dfprofiles_b (
			Station TEXT, Program TEXT, Specie TEXT,
			"Factor 1" REAL, "Factor 2" REAL
		)`,
		`INSERT INTO PMF_dfprofiles_b VALUES
			('SiteA', 'P1', 'PM10', 12.5, 8.75),
			('SiteA', 'P1', 'OC', 2.0, NULL),
			('SiteA', 'P2', 'PM10', 99.0, 99.0),
			('SiteB', 'P1', 'PM10', 50.0, 40.0)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

func TestDatabaseTable(t *testing.T) {
	db := openFixtureDB(t)
	src := NewDatabase(db, "SiteA", "", nil)

	doc, err := src.Table(TableProfilesBase)
	require.NoError(t, err)

	assert.Equal(t, "PMF_dfprofiles_b", doc.Name)
	assert.Equal(t, []string{"Station", "Program", "Specie", "Factor 1", "Factor 2"}, doc.Columns)
	// Filtered to the requested site only.
	require.Len(t, doc.Rows, 3)
	assert.Equal(t, "PM10", doc.Cell(0, doc.Column("Specie")))
	assert.Equal(t, "12.5", doc.Cell(0, doc.Column("Factor 1")))
	// NULL renders as the empty cell.
	assert.Equal(t, "", doc.Cell(1, doc.Column("Factor 2")))
}

func TestDatabaseProgramFilter(t *testing.T) {
	db := openFixtureDB(t)
	src := NewDatabase(db, "SiteA", "P2", nil)

	doc, err := src.Table(TableProfilesBase)
	require.NoError(t, err)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "99", doc.Cell(0, doc.Column("Factor 1")))
}

func TestDatabaseTableOverride(t *testing.T) {
	db := openFixtureDB(t)
	_, err := db.Exec(`CREATE TABLE custom_profiles (Station TEXT, Specie TEXT, "Factor 1" REAL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO custom_profiles VALUES ('SiteA', 'PM10', 1.0)`)
	require.NoError(t, err)

	src := NewDatabase(db, "SiteA", "", map[string]string{TableProfilesBase: "custom_profiles"})
	doc, err := src.Table(TableProfilesBase)
	require.NoError(t, err)
	assert.Equal(t, "custom_profiles", doc.Name)
	require.Len(t, doc.Rows, 1)
}

func TestDatabaseTableNotFound(t *testing.T) {
	db := openFixtureDB(t)
	src := NewDatabase(db, "SiteA", "", nil)

	_, err := src.Table(TableUncertaintyBase)
	require.Error(t, err)
	assert.True(t, pmferrors.IsNotFound(err))

	_, err = src.Table("no-such-logical-table")
	require.Error(t, err)
	assert.True(t, pmferrors.IsNotFound(err))
}

func TestListSites(t *testing.T) {
	db := openFixtureDB(t)

	sites, err := ListSites(db, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"SiteA", "SiteB"}, sites)
}

func TestListSitesMissingTable(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = ListSites(db, nil)
	require.Error(t, err)
	assert.True(t, pmferrors.IsNotFound(err))
}
