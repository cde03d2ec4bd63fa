// Package memory provides a process-lifetime Store backed by maps. It keeps
// the storage abstraction honest in tests and is the default backend for
// local development.
package memory

import (
	"context"
	"sort"
	"sync"

	records "github.com/stu-tools/rent-atlas/pkg/models/store"
	"github.com/stu-tools/rent-atlas/pkg/store"
)

type Store struct {
	mu         sync.RWMutex
	properties map[string]records.Property
	floorplans map[string]records.Floorplan
	analyses   map[string]records.Analysis
	scenarios  map[string]records.Scenario
}

func New() *Store {
	return &Store{
		properties: make(map[string]records.Property),
		floorplans: make(map[string]records.Floorplan),
		analyses:   make(map[string]records.Analysis),
		scenarios:  make(map[string]records.Scenario),
	}
}

func (s *Store) Properties() store.Properties { return &properties{s} }
func (s *Store) Floorplans() store.Floorplans { return &floorplans{s} }
func (s *Store) Analyses() store.Analyses     { return &analyses{s} }
func (s *Store) Scenarios() store.Scenarios   { return &scenarios{s} }

type properties struct{ s *Store }

func (p *properties) Get(_ context.Context, id string) (*records.Property, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	rec, ok := p.s.properties[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &rec, nil
}

func (p *properties) List(_ context.Context) ([]records.Property, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	out := make([]records.Property, 0, len(p.s.properties))
	for _, rec := range p.s.properties {
		out = append(out, rec)
	}
	sortByCreated(out, func(r records.Property) (int64, string) { return r.CreatedAt.UnixNano(), r.ID })
	return out, nil
}

func (p *properties) Put(_ context.Context, rec records.Property) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	p.s.properties[rec.ID] = rec
	return nil
}

func (p *properties) Delete(_ context.Context, id string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if _, ok := p.s.properties[id]; !ok {
		return store.ErrNotFound
	}
	delete(p.s.properties, id)
	return nil
}

type floorplans struct{ s *Store }

func (f *floorplans) Get(_ context.Context, id string) (*records.Floorplan, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	rec, ok := f.s.floorplans[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &rec, nil
}

func (f *floorplans) ListByProperty(_ context.Context, propertyID string) ([]records.Floorplan, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	out := make([]records.Floorplan, 0)
	for _, rec := range f.s.floorplans {
		if rec.PropertyID == propertyID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *floorplans) Put(_ context.Context, rec records.Floorplan) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.floorplans[rec.ID] = rec
	return nil
}

func (f *floorplans) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.floorplans[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.s.floorplans, id)
	return nil
}

type analyses struct{ s *Store }

func (a *analyses) Get(_ context.Context, id string) (*records.Analysis, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	rec, ok := a.s.analyses[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &rec, nil
}

func (a *analyses) List(_ context.Context) ([]records.Analysis, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	out := make([]records.Analysis, 0, len(a.s.analyses))
	for _, rec := range a.s.analyses {
		out = append(out, rec)
	}
	sortByCreated(out, func(r records.Analysis) (int64, string) { return r.CreatedAt.UnixNano(), r.ID })
	return out, nil
}

func (a *analyses) Put(_ context.Context, rec records.Analysis) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	a.s.analyses[rec.ID] = rec
	return nil
}

func (a *analyses) Delete(_ context.Context, id string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if _, ok := a.s.analyses[id]; !ok {
		return store.ErrNotFound
	}
	delete(a.s.analyses, id)
	return nil
}

type scenarios struct{ s *Store }

func (sc *scenarios) Get(_ context.Context, id string) (*records.Scenario, error) {
	sc.s.mu.RLock()
	defer sc.s.mu.RUnlock()
	rec, ok := sc.s.scenarios[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyScenario(rec), nil
}

func (sc *scenarios) ListByAnalysis(_ context.Context, analysisID string) ([]records.Scenario, error) {
	sc.s.mu.RLock()
	defer sc.s.mu.RUnlock()
	out := make([]records.Scenario, 0)
	for _, rec := range sc.s.scenarios {
		if rec.AnalysisID == analysisID {
			out = append(out, *copyScenario(rec))
		}
	}
	sortByCreated(out, func(r records.Scenario) (int64, string) { return r.CreatedAt.UnixNano(), r.ID })
	return out, nil
}

func (sc *scenarios) Put(_ context.Context, rec records.Scenario) error {
	sc.s.mu.Lock()
	defer sc.s.mu.Unlock()
	sc.s.scenarios[rec.ID] = *copyScenario(rec)
	return nil
}

func (sc *scenarios) Delete(_ context.Context, id string) error {
	sc.s.mu.Lock()
	defer sc.s.mu.Unlock()
	if _, ok := sc.s.scenarios[id]; !ok {
		return store.ErrNotFound
	}
	delete(sc.s.scenarios, id)
	return nil
}

// copyScenario detaches the cached results pointer so callers cannot mutate
// stored state through it.
func copyScenario(rec records.Scenario) *records.Scenario {
	if rec.Results != nil {
		results := *rec.Results
		rec.Results = &results
	}
	return &rec
}

func sortByCreated[T any](items []T, key func(T) (int64, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti != tj {
			return ti < tj
		}
		return idi < idj
	})
}
