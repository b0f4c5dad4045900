// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package fitcoachdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultCollection is the collection plan records are stored in.
const DefaultCollection = "planRecords"

// ErrNotFound is returned when no record exists for an ID.
var ErrNotFound = errors.New("fitcoachdb: plan record not found")

// PersistenceError is returned when the store could not be reached or
// rejected an operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("fitcoachdb: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// PlanStore persists plan records.
type PlanStore interface {
	// Create saves a profile as a new record without a plan.
	Create(ctx context.Context, profile Profile) (*PlanRecord, error)

	// AttachPlan sets the plan of an existing record, replacing any previous plan.
	AttachPlan(ctx context.Context, id string, plan Plan) (*PlanRecord, error)

	// Get returns the record with the ID.
	Get(ctx context.Context, id string) (*PlanRecord, error)

	// List returns records that have a plan, most recent first. Only the
	// fields needed for a listing are populated.
	List(ctx context.Context) ([]*PlanRecord, error)

	// Delete removes the record with the ID.
	Delete(ctx context.Context, id string) error
}

// listFields are the fields populated by List.
var listFields = []string{"id", "name", "age", "gender", "fitnessGoals", "aiPlan", "hasPlan", "createdAt"}

// NewFirestoreStore returns a PlanStore backed by the collection in store.
func NewFirestoreStore(store *firestore.Client, collection string) *FirestoreStore {
	if collection == "" {
		collection = DefaultCollection
	}
	return &FirestoreStore{
		store:      store,
		collection: collection,
		now:        time.Now,
	}
}

// FirestoreStore is a PlanStore using Firestore documents.
type FirestoreStore struct {
	store      *firestore.Client
	collection string
	now        func() time.Time
}

func (s *FirestoreStore) col() *firestore.CollectionRef {
	return s.store.Collection(s.collection)
}

func (s *FirestoreStore) Create(ctx context.Context, profile Profile) (*PlanRecord, error) {
	rec := &PlanRecord{
		ID:        uuid.NewString(),
		Profile:   profile,
		CreatedAt: s.now().UTC(),
	}
	if _, err := s.col().Doc(rec.ID).Create(ctx, rec); err != nil {
		return nil, &PersistenceError{Op: "creating plan record", Err: err}
	}
	return rec, nil
}

func (s *FirestoreStore) AttachPlan(ctx context.Context, id string, plan Plan) (*PlanRecord, error) {
	doc := s.col().Doc(id)
	if _, err := doc.Update(ctx, []firestore.Update{
		{Path: "aiPlan", Value: plan},
		{Path: "hasPlan", Value: plan != nil},
	}); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "attaching plan", Err: err}
	}
	return s.Get(ctx, id)
}

func (s *FirestoreStore) Get(ctx context.Context, id string) (*PlanRecord, error) {
	snap, err := s.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "fetching plan record", Err: err}
	}
	var rec PlanRecord
	if err := snap.DataTo(&rec); err != nil {
		return nil, &PersistenceError{Op: "decoding plan record", Err: err}
	}
	return &rec, nil
}

func (s *FirestoreStore) List(ctx context.Context) ([]*PlanRecord, error) {
	iter := s.col().
		Select(listFields...).
		Where("hasPlan", "==", true).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var recs []*PlanRecord
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, &PersistenceError{Op: "listing plan records", Err: err}
		}
		var rec PlanRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, &PersistenceError{Op: "decoding plan record", Err: err}
		}
		recs = append(recs, &rec)
	}
	return recs, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	if _, err := s.col().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return &PersistenceError{Op: "deleting plan record", Err: err}
	}
	return nil
}
