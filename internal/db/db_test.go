package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, "001_init", migrations[0].Version)
	for _, table := range []string{"quotes", "quote_feedback", "quote_memory"} {
		assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}
}

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name      string
		filters   QuoteFilters
		wantParts []string
		wantArgs  []any
	}{
		{
			name:      "defaults",
			filters:   QuoteFilters{},
			wantParts: []string{"ORDER BY created_at DESC LIMIT $1"},
			wantArgs:  []any{DefaultQuoteListLimit},
		},
		{
			name:      "city only",
			filters:   QuoteFilters{City: "Paris", Limit: 5},
			wantParts: []string{"city ILIKE $1", "LIMIT $2"},
			wantArgs:  []any{"Paris", 5},
		},
		{
			name:      "city and confidence",
			filters:   QuoteFilters{City: "Paris", MinConfidence: 0.6, Limit: 10},
			wantParts: []string{"city ILIKE $1", "confidence_score >= $2", "LIMIT $3"},
			wantArgs:  []any{"Paris", 0.6, 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildListQuery(tt.filters)
			for _, part := range tt.wantParts {
				assert.True(t, strings.Contains(query, part), "query %q should contain %q", query, part)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
