// Package duckdb provides the persistent Store backend on an embedded
// DuckDB database.
package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const propertiesSchema = `
	CREATE TABLE IF NOT EXISTS properties (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		address VARCHAR NOT NULL,
		total_units INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
`

const floorplansSchema = `
	CREATE TABLE IF NOT EXISTS floorplans (
		id VARCHAR PRIMARY KEY,
		property_id VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		unit_type VARCHAR NOT NULL,
		unit_count INTEGER NOT NULL,
		square_footage DOUBLE NOT NULL,
		floor_level VARCHAR,
		view_type VARCHAR,
		base_rent DOUBLE NOT NULL,
		amenity_rent DOUBLE NOT NULL
	);
`

const analysesSchema = `
	CREATE TABLE IF NOT EXISTS analyses (
		id VARCHAR PRIMARY KEY,
		property_id VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		description VARCHAR,
		occupancy_rate DOUBLE NOT NULL,
		parent_analysis_id VARCHAR,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
`

const scenariosSchema = `
	CREATE TABLE IF NOT EXISTS scenarios (
		id VARCHAR PRIMARY KEY,
		analysis_id VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		base_rent_pct_adj DOUBLE NOT NULL,
		base_rent_dollar_adj DOUBLE NOT NULL,
		amenity_rent_pct_adj DOUBLE NOT NULL,
		amenity_rent_dollar_adj DOUBLE NOT NULL,
		concession_type VARCHAR NOT NULL,
		concession_value DOUBLE NOT NULL,
		total_annual_revenue DOUBLE,
		avg_rent_per_unit DOUBLE,
		revenue_per_sqft DOUBLE,
		weighted_avg_rent DOUBLE,
		created_at TIMESTAMP NOT NULL
	);
`

var bootQueries = []string{
	propertiesSchema,
	floorplansSchema,
	analysesSchema,
	scenariosSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens (or creates) the database at Settings.DbPath and runs the boot
// schema. Use ":memory:" for an ephemeral database in tests.
func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(settings.DbPath, func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("open duckdb at %q: %w", settings.DbPath, err)
	}

	return sql.OpenDB(c), nil
}
