package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcraft/internal/catalog"
	"tripcraft/internal/models/trip_models"
)

func TestDocumentRowsRoundTrip(t *testing.T) {
	doc, err := catalog.SeedDocumentFromEmbedded()
	require.NoError(t, err)

	release, rows := DocumentToRows(doc)
	assert.Equal(t, doc.Version, release.Version)
	require.Len(t, rows, len(doc.Destinations))

	// reverse row order so only Position can restore it
	shuffled := append(rows[:0:0], rows...)
	for i, j := 0, len(shuffled)-1; i < j; i, j = i+1, j-1 {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	fromRows, err := catalog.New(release.Version, RowsToDestinations(shuffled))
	require.NoError(t, err)
	seed, err := catalog.Seed()
	require.NoError(t, err)

	assert.Equal(t, seed.Version(), fromRows.Version())
	assert.Equal(t, seed.Keys(), fromRows.Keys())
	for _, key := range seed.Keys() {
		want, _ := seed.Lookup(key)
		got, ok := fromRows.Lookup(key)
		require.True(t, ok, key)
		assert.Equal(t, want.Aliases, got.Aliases, key)
		assert.Equal(t, want.Activities, got.Activities, key)
		assert.Equal(t, want.Name, got.Name, key)
	}
}

func TestRowsToDestinationsKeepsActivityOrder(t *testing.T) {
	doc := catalog.SeedDocument{
		Version: "test",
		Destinations: []catalog.SeedDestination{{
			Key:        "Lisbon",
			Activities: map[string][]string{"food": {"Pastel de nata", "Time Out Market", "Tascas of Alfama"}},
		}},
	}
	_, rows := DocumentToRows(doc)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lisbon", rows[0].Name)

	acts := rows[0].Activities
	acts[0], acts[2] = acts[2], acts[0]

	got := RowsToDestinations(rows)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Pastel de nata", "Time Out Market", "Tascas of Alfama"}, got[0].Activities[trip_models.InterestFood])
}
