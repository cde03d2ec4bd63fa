// Package store declares the storage abstraction the service and handler
// layers are written against. Implementations: store/memory (process
// lifetime, seeded) and store/duckdb (embedded persistent database).
package store

import (
	"context"
	"errors"

	"github.com/stu-tools/rent-atlas/pkg/models/store"
)

// ErrNotFound is returned when a record with the requested id does not exist.
var ErrNotFound = errors.New("record not found")

type Properties interface {
	Get(ctx context.Context, id string) (*store.Property, error)
	List(ctx context.Context) ([]store.Property, error)
	Put(ctx context.Context, p store.Property) error
	Delete(ctx context.Context, id string) error
}

type Floorplans interface {
	Get(ctx context.Context, id string) (*store.Floorplan, error)
	// ListByProperty returns the property's floorplans in a stable order.
	ListByProperty(ctx context.Context, propertyID string) ([]store.Floorplan, error)
	Put(ctx context.Context, fp store.Floorplan) error
	Delete(ctx context.Context, id string) error
}

type Analyses interface {
	Get(ctx context.Context, id string) (*store.Analysis, error)
	List(ctx context.Context) ([]store.Analysis, error)
	Put(ctx context.Context, a store.Analysis) error
	Delete(ctx context.Context, id string) error
}

type Scenarios interface {
	Get(ctx context.Context, id string) (*store.Scenario, error)
	ListByAnalysis(ctx context.Context, analysisID string) ([]store.Scenario, error)
	Put(ctx context.Context, s store.Scenario) error
	Delete(ctx context.Context, id string) error
}

// Store bundles the per-entity stores behind one injection point.
type Store interface {
	Properties() Properties
	Floorplans() Floorplans
	Analyses() Analyses
	Scenarios() Scenarios
}
