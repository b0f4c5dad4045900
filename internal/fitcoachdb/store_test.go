// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package fitcoachdb_test

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/fitcoach/internal/fitcoachdb"
	"github.com/curioswitch/fitcoach/internal/fitcoachdb/fitcoachdbtest"
)

func TestMemoryStore(t *testing.T) {
	fitcoachdbtest.RunStoreTests(t, func(*testing.T) fitcoachdb.PlanStore {
		return fitcoachdbtest.NewMemoryStore()
	})
}

func TestFirestoreStore(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := firestore.NewClient(context.Background(), "fitcoach-test")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})

	fitcoachdbtest.RunStoreTests(t, func(*testing.T) fitcoachdb.PlanStore {
		// Each subtest gets its own collection so listings don't see other records.
		return fitcoachdb.NewFirestoreStore(client, "planRecords-"+uuid.NewString())
	})
}
