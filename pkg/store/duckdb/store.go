package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	records "github.com/stu-tools/rent-atlas/pkg/models/store"
	"github.com/stu-tools/rent-atlas/pkg/store"
)

// Store implements store.Store on a DuckDB database opened via NewDB.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Store{db: db}, nil
}

func (s *Store) Properties() store.Properties { return &properties{db: s.db} }
func (s *Store) Floorplans() store.Floorplans { return &floorplans{db: s.db} }
func (s *Store) Analyses() store.Analyses     { return &analyses{db: s.db} }
func (s *Store) Scenarios() store.Scenarios   { return &scenarios{db: s.db} }

type properties struct{ db *sql.DB }

const propertyColumns = `id, name, address, total_units, created_at, updated_at`

func (p *properties) Get(ctx context.Context, id string) (*records.Property, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id)

	var rec records.Property
	err := row.Scan(&rec.ID, &rec.Name, &rec.Address, &rec.TotalUnits, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	return &rec, nil
}

func (p *properties) List(ctx context.Context) ([]records.Property, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+propertyColumns+` FROM properties ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	out := make([]records.Property, 0)
	for rows.Next() {
		var rec records.Property
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Address, &rec.TotalUnits, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (p *properties) Put(ctx context.Context, rec records.Property) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO properties (`+propertyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Address, rec.TotalUnits, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("put property: %w", err)
	}
	return nil
}

func (p *properties) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, p.db, "properties", id)
}

type floorplans struct{ db *sql.DB }

const floorplanColumns = `id, property_id, name, unit_type, unit_count, square_footage,
floor_level, view_type, base_rent, amenity_rent`

func (f *floorplans) Get(ctx context.Context, id string) (*records.Floorplan, error) {
	row := f.db.QueryRowContext(ctx,
		`SELECT `+floorplanColumns+` FROM floorplans WHERE id = ?`, id)

	rec, err := scanFloorplan(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get floorplan: %w", err)
	}
	return rec, nil
}

func (f *floorplans) ListByProperty(ctx context.Context, propertyID string) ([]records.Floorplan, error) {
	rows, err := f.db.QueryContext(ctx,
		`SELECT `+floorplanColumns+` FROM floorplans WHERE property_id = ? ORDER BY name`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list floorplans: %w", err)
	}
	defer rows.Close()

	out := make([]records.Floorplan, 0)
	for rows.Next() {
		rec, err := scanFloorplan(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (f *floorplans) Put(ctx context.Context, rec records.Floorplan) error {
	_, err := f.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO floorplans (`+floorplanColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.PropertyID, rec.Name, rec.UnitType, rec.UnitCount, rec.SquareFootage,
		nullString(rec.FloorLevel), nullString(rec.ViewType), rec.BaseRent, rec.AmenityRent)
	if err != nil {
		return fmt.Errorf("put floorplan: %w", err)
	}
	return nil
}

func (f *floorplans) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, f.db, "floorplans", id)
}

func scanFloorplan(scan func(...any) error) (*records.Floorplan, error) {
	var rec records.Floorplan
	var floorLevel, viewType sql.NullString
	err := scan(&rec.ID, &rec.PropertyID, &rec.Name, &rec.UnitType, &rec.UnitCount,
		&rec.SquareFootage, &floorLevel, &viewType, &rec.BaseRent, &rec.AmenityRent)
	if err != nil {
		return nil, err
	}
	rec.FloorLevel = floorLevel.String
	rec.ViewType = viewType.String
	return &rec, nil
}

type analyses struct{ db *sql.DB }

const analysisColumns = `id, property_id, name, description, occupancy_rate,
parent_analysis_id, created_at, updated_at`

func (a *analyses) Get(ctx context.Context, id string) (*records.Analysis, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT `+analysisColumns+` FROM analyses WHERE id = ?`, id)

	rec, err := scanAnalysis(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis: %w", err)
	}
	return rec, nil
}

func (a *analyses) List(ctx context.Context) ([]records.Analysis, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT `+analysisColumns+` FROM analyses ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	out := make([]records.Analysis, 0)
	for rows.Next() {
		rec, err := scanAnalysis(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (a *analyses) Put(ctx context.Context, rec records.Analysis) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO analyses (`+analysisColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.PropertyID, rec.Name, nullString(rec.Description), rec.OccupancyRate,
		nullString(rec.ParentAnalysisID), rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("put analysis: %w", err)
	}
	return nil
}

func (a *analyses) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, a.db, "analyses", id)
}

func scanAnalysis(scan func(...any) error) (*records.Analysis, error) {
	var rec records.Analysis
	var description, parentID sql.NullString
	err := scan(&rec.ID, &rec.PropertyID, &rec.Name, &description, &rec.OccupancyRate,
		&parentID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.Description = description.String
	rec.ParentAnalysisID = parentID.String
	return &rec, nil
}

type scenarios struct{ db *sql.DB }

const scenarioColumns = `id, analysis_id, name, base_rent_pct_adj, base_rent_dollar_adj,
amenity_rent_pct_adj, amenity_rent_dollar_adj, concession_type, concession_value,
total_annual_revenue, avg_rent_per_unit, revenue_per_sqft, weighted_avg_rent, created_at`

func (s *scenarios) Get(ctx context.Context, id string) (*records.Scenario, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+scenarioColumns+` FROM scenarios WHERE id = ?`, id)

	rec, err := scanScenario(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get scenario: %w", err)
	}
	return rec, nil
}

func (s *scenarios) ListByAnalysis(ctx context.Context, analysisID string) ([]records.Scenario, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+scenarioColumns+` FROM scenarios WHERE analysis_id = ? ORDER BY created_at, id`, analysisID)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	out := make([]records.Scenario, 0)
	for rows.Next() {
		rec, err := scanScenario(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (s *scenarios) Put(ctx context.Context, rec records.Scenario) error {
	var total, avgRent, perSqft, weighted sql.NullFloat64
	if rec.Results != nil {
		total = sql.NullFloat64{Float64: rec.Results.TotalAnnualRevenue, Valid: true}
		avgRent = sql.NullFloat64{Float64: rec.Results.AvgRentPerUnit, Valid: true}
		perSqft = sql.NullFloat64{Float64: rec.Results.RevenuePerSqft, Valid: true}
		weighted = sql.NullFloat64{Float64: rec.Results.WeightedAvgRent, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO scenarios (`+scenarioColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.AnalysisID, rec.Name,
		rec.BaseRentPctAdj, rec.BaseRentDollarAdj, rec.AmenityRentPctAdj, rec.AmenityRentDollarAdj,
		rec.ConcessionType, rec.ConcessionValue,
		total, avgRent, perSqft, weighted, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("put scenario: %w", err)
	}
	return nil
}

func (s *scenarios) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, "scenarios", id)
}

func scanScenario(scan func(...any) error) (*records.Scenario, error) {
	var rec records.Scenario
	var total, avgRent, perSqft, weighted sql.NullFloat64
	err := scan(&rec.ID, &rec.AnalysisID, &rec.Name,
		&rec.BaseRentPctAdj, &rec.BaseRentDollarAdj, &rec.AmenityRentPctAdj, &rec.AmenityRentDollarAdj,
		&rec.ConcessionType, &rec.ConcessionValue,
		&total, &avgRent, &perSqft, &weighted, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if total.Valid {
		rec.Results = &records.ScenarioResults{
			TotalAnnualRevenue: total.Float64,
			AvgRentPerUnit:     avgRent.Float64,
			RevenuePerSqft:     perSqft.Float64,
			WeightedAvgRent:    weighted.Float64,
		}
	}
	return &rec, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func deleteByID(ctx context.Context, db *sql.DB, table, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
