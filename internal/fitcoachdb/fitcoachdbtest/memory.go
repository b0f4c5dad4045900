// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package fitcoachdbtest provides an in-memory PlanStore for tests.
package fitcoachdbtest

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/curioswitch/fitcoach/internal/fitcoachdb"
)

// MemoryStore is a PlanStore that keeps records in memory. Err, when set, is
// returned from every operation.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*fitcoachdb.PlanRecord
	nextID  int
	last    time.Time

	Err error

	// Writes counts Create and AttachPlan calls.
	Writes int
}

var _ fitcoachdb.PlanStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]*fitcoachdb.PlanRecord{}}
}

func (m *MemoryStore) Create(_ context.Context, profile fitcoachdb.Profile) (*fitcoachdb.PlanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.Writes++
	m.nextID++

	now := time.Now().UTC()
	if !now.After(m.last) {
		now = m.last.Add(time.Microsecond)
	}
	m.last = now

	rec := &fitcoachdb.PlanRecord{
		ID:        "rec-" + strconv.Itoa(m.nextID),
		Profile:   profile,
		CreatedAt: now,
	}
	m.records[rec.ID] = rec
	cp := *rec
	return &cp, nil
}

func (m *MemoryStore) AttachPlan(_ context.Context, id string, plan fitcoachdb.Plan) (*fitcoachdb.PlanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.Writes++
	rec, ok := m.records[id]
	if !ok {
		return nil, fitcoachdb.ErrNotFound
	}
	rec.AIPlan = plan
	rec.HasPlan = plan != nil
	cp := *rec
	return &cp, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*fitcoachdb.PlanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	rec, ok := m.records[id]
	if !ok {
		return nil, fitcoachdb.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *MemoryStore) List(_ context.Context) ([]*fitcoachdb.PlanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var recs []*fitcoachdb.PlanRecord
	for _, rec := range m.records {
		if !rec.HasPlan {
			continue
		}
		recs = append(recs, &fitcoachdb.PlanRecord{
			ID: rec.ID,
			Profile: fitcoachdb.Profile{
				Name:         rec.Name,
				Age:          rec.Age,
				Gender:       rec.Gender,
				FitnessGoals: rec.FitnessGoals,
			},
			AIPlan:    rec.AIPlan,
			HasPlan:   rec.HasPlan,
			CreatedAt: rec.CreatedAt,
		})
	}
	slices.SortFunc(recs, func(a, b *fitcoachdb.PlanRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return recs, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.records[id]; !ok {
		return fitcoachdb.ErrNotFound
	}
	delete(m.records, id)
	return nil
}
