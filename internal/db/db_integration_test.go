//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/renovation-quoter/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err, "failed to connect to test database")

	_, err = db.Migrate(ctx)
	require.NoError(t, err)

	_, _ = db.pool.Exec(ctx, "DELETE FROM quote_feedback WHERE quote_id LIKE 'it-%'")
	_, _ = db.pool.Exec(ctx, "DELETE FROM quote_memory WHERE id LIKE 'it-%'")
	return db
}

func TestIntegration_MigrateIsIdempotent(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	applied, err := db.Migrate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestIntegration_QuoteArchive(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	archive := NewQuoteArchive(db)

	id := uuid.New()
	defer func() { _, _ = db.pool.Exec(ctx, "DELETE FROM quotes WHERE id = $1", id) }()

	quote := &types.Quote{
		QuoteID:         id.String(),
		Zone:            types.ZoneBathroom,
		City:            "Paris",
		SizeM2:          4,
		Tasks:           []types.TaskQuoteLine{{Name: "Ceramic Floor Tiles", TotalPrice: 465.52}},
		OverallTotal:    465.52,
		OverallMargin:   55.2,
		ConfidenceScore: 0.8,
	}
	require.NoError(t, archive.Save(ctx, "retile 4m2 in Paris", quote))

	rec, err := archive.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "retile 4m2 in Paris", rec.Transcript)
	assert.Equal(t, quote, rec.Quote)

	list, err := archive.List(ctx, QuoteFilters{City: "paris", Limit: 100})
	require.NoError(t, err)
	found := false
	for _, s := range list {
		if s.ID == id {
			found = true
			assert.Equal(t, 465.52, s.OverallTotal)
		}
	}
	assert.True(t, found)

	missing, err := archive.Get(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = archive.Save(ctx, "", &types.Quote{QuoteID: "not-a-uuid"})
	require.Error(t, err)
}

func TestIntegration_FeedbackLedger(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	ledger := NewFeedbackLedger(db)

	require.NoError(t, ledger.Append(ctx, types.FeedbackRecord{QuoteID: "it-a", Accepted: true}))
	require.NoError(t, ledger.Append(ctx, types.FeedbackRecord{QuoteID: "it-b", Accepted: false}))
	require.NoError(t, ledger.Append(ctx, types.FeedbackRecord{QuoteID: "it-a", Accepted: false}))

	records, err := ledger.ReadAll(ctx)
	require.NoError(t, err)

	var ours []types.FeedbackRecord
	for _, r := range records {
		if len(r.QuoteID) > 3 && r.QuoteID[:3] == "it-" {
			ours = append(ours, r)
		}
	}
	assert.Equal(t, []types.FeedbackRecord{
		{QuoteID: "it-a", Accepted: true},
		{QuoteID: "it-b", Accepted: false},
		{QuoteID: "it-a", Accepted: false},
	}, ours)
}

func TestIntegration_MemoryBackend(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()
	backend := NewMemoryBackend(db)

	first := types.MemoryEntry{
		ID:        "it-1",
		Document:  "retile the floor",
		Embedding: []float32{0.1, 0.2, 0.3},
		Metadata:  types.MemoryMetadata{QuoteID: "it-1", City: "Paris", Zone: types.ZoneBathroom},
	}
	require.NoError(t, backend.Put(ctx, first))
	require.NoError(t, backend.Put(ctx, types.MemoryEntry{ID: "it-2", Document: "paint", Embedding: []float32{1, 0, 0}}))

	first.Document = "retile the whole floor"
	require.NoError(t, backend.Put(ctx, first))

	entries, err := backend.All(ctx)
	require.NoError(t, err)

	var ours []types.MemoryEntry
	for _, e := range entries {
		if e.ID == "it-1" || e.ID == "it-2" {
			ours = append(ours, e)
		}
	}
	require.Len(t, ours, 2)
	assert.Equal(t, "it-1", ours[0].ID)
	assert.Equal(t, "retile the whole floor", ours[0].Document)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, ours[0].Embedding)
	assert.Equal(t, "Paris", ours[0].Metadata.City)
}
