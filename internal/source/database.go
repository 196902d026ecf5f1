package source

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	pmferrors "pmfkit/internal/errors"
)

// Logical table keys used by the relational source. They mirror the run
// object's table slots.
const (
	TableProfilesBase           = "dfprofiles_b"
	TableProfilesConstrained    = "dfprofiles_c"
	TableContribBase            = "dfcontrib_b"
	TableContribConstrained     = "dfcontrib_c"
	TableBootProfilesBase       = "dfBS_profile_b"
	TableBootProfilesConstr     = "dfBS_profile_c"
	TableBootMappingBase        = "dfbootstrap_mapping_b"
	TableBootMappingConstrained = "dfbootstrap_mapping_c"
	TableDispSwapBase           = "df_disp_swap_b"
	TableDispSwapConstrained    = "df_disp_swap_c"
	TableUncertaintyBase        = "df_uncertainties_summary_b"
	TableUncertaintyConstrained = "df_uncertainties_summary_c"
)

// DefaultTableNames maps logical table keys to the conventional SQL table
// names of the upstream export.
func DefaultTableNames() map[string]string {
	return map[string]string{
		TableContribBase:            "PMF_dfcontrib_b",
		TableContribConstrained:     "PMF_dfcontrib_c",
		TableProfilesBase:           "PMF_dfprofiles_b",
		TableProfilesConstrained:    "PMF_dfprofiles_c",
		TableBootProfilesBase:       "PMF_dfBS_profile_b",
		TableBootProfilesConstr:     "PMF_dfBS_profile_c",
		TableUncertaintyBase:        "PMF_df_uncertainties_summary_b",
		TableUncertaintyConstrained: "PMF_df_uncertainties_summary_c",
		TableBootMappingBase:        "PMF_dfbootstrap_mapping_b",
		TableBootMappingConstrained: "PMF_dfbootstrap_mapping_c",
		TableDispSwapBase:           "PMF_df_disp_swap_b",
		TableDispSwapConstrained:    "PMF_df_disp_swap_c",
	}
}

// Database is a relational source filtered by a site (Station column) and an
// optional program identifier.
type Database struct {
	db      *sql.DB
	site    string
	program string
	tables  map[string]string
}

// NewDatabase wraps an open connection. overrides replaces individual
// entries of the default table-name mapping.
func NewDatabase(db *sql.DB, site, program string, overrides map[string]string) *Database {
	tables := DefaultTableNames()
	for k, v := range overrides {
		tables[k] = v
	}
	return &Database{db: db, site: site, program: program, tables: tables}
}

// Table runs the filtered query for one logical table and returns the result
// as a Document with column names attached. A table missing from the schema
// yields a NotFound error.
func (d *Database) Table(logical string) (*Document, error) {
	name, ok := d.tables[logical]
	if !ok {
		return nil, pmferrors.NotFound(logical, "no table mapping for %q", logical)
	}

	exists, err := d.tableExists(name)
	if err != nil {
		return nil, fmt.Errorf("check table %s: %w", name, err)
	}
	if !exists {
		return nil, pmferrors.NotFound(name, "table %q not found", name)
	}

	query := fmt.Sprintf("SELECT * FROM %q WHERE Station = ?", name)
	args := []any{d.site}
	if d.program != "" {
		query += " AND Program = ?"
		args = append(args, d.program)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, pmferrors.StructuralWrap(name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, pmferrors.StructuralWrap(name, err)
	}

	doc := &Document{Name: name, Columns: cols}
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, pmferrors.StructuralWrap(name, err)
		}
		rec := make([]string, len(cols))
		for i, v := range raw {
			rec[i] = formatValue(v)
		}
		doc.Rows = append(doc.Rows, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, pmferrors.StructuralWrap(name, err)
	}
	return doc, nil
}

// ListSites returns the distinct Station values of the base profile table,
// sorted. overrides has the same meaning as in NewDatabase.
func ListSites(db *sql.DB, overrides map[string]string) ([]string, error) {
	tables := DefaultTableNames()
	for k, v := range overrides {
		tables[k] = v
	}
	name := tables[TableProfilesBase]

	query := fmt.Sprintf("SELECT DISTINCT Station FROM %q ORDER BY Station", name)
	rows, err := db.Query(query)
	if err != nil {
		return nil, pmferrors.NotFound(name, "list sites: %v", err)
	}
	defer rows.Close()

	var sites []string
	for rows.Next() {
		var site string
		if err := rows.Scan(&site); err != nil {
			return nil, pmferrors.StructuralWrap(name, err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, pmferrors.StructuralWrap(name, err)
	}
	return sites, nil
}

func (d *Database) tableExists(name string) (bool, error) {
	var found string
	err := d.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// formatValue renders a scanned SQL value as cell text. NULL becomes the
// empty cell, matching the workbook convention for missing values.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", x)
	}
}
