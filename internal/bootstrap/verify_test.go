package bootstrap

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightdb/pkg/logger"
)

func TestVerify_EmptyDatabase(t *testing.T) {
	report, err := Verify(context.Background(), newFakeStore())
	require.NoError(t, err)

	assert.False(t, report.Ready)
	assert.Equal(t, "flight_booking_db", report.Database)
	require.Len(t, report.Collections, 6)

	places, ok := report.Collection(PlacesCollection)
	require.True(t, ok)
	assert.False(t, places.Exists)
	assert.Equal(t, []string{"code_1", "city_1", "country_1"}, places.MissingIndexes)

	err = report.Err()
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Contains(t, err.Error(), "collection flight_place")
}

func TestVerify_AfterRun(t *testing.T) {
	store := newFakeStore()
	_, err := New(store, logger.Discard(), fullOptions()).Run(context.Background())
	require.NoError(t, err)

	report, err := Verify(context.Background(), store)
	require.NoError(t, err)

	assert.True(t, report.Ready)
	assert.NoError(t, report.Err())

	places, _ := report.Collection(PlacesCollection)
	assert.Equal(t, int64(5), places.Documents)
	assert.Empty(t, places.MissingIndexes)

	week, _ := report.Collection(WeekCollection)
	assert.Equal(t, int64(7), week.Documents)
}

func TestVerify_MissingIndex(t *testing.T) {
	store := newFakeStore()
	_, err := New(store, logger.Discard(), Options{}).Run(context.Background())
	require.NoError(t, err)

	store.indexes[TicketsCollection] = slices.DeleteFunc(store.indexes[TicketsCollection], func(idx IndexInfo) bool {
		return idx.Name == "ref_no_1"
	})

	report, err := Verify(context.Background(), store)
	require.NoError(t, err)

	assert.False(t, report.Ready)
	tickets, _ := report.Collection(TicketsCollection)
	assert.True(t, tickets.Exists)
	assert.Equal(t, []string{"ref_no_1"}, tickets.MissingIndexes)
	assert.Contains(t, report.Err().Error(), "index flight_ticket.ref_no_1")
}

func TestVerify_DeclaredUniqueIndexWithoutConstraint(t *testing.T) {
	tests := []struct {
		collection string
		index      string
	}{
		{collection: PlacesCollection, index: "code_1"},
		{collection: TicketsCollection, index: "ref_no_1"},
		{collection: FlightsCollection, index: "flight_number_1"},
	}

	for _, tt := range tests {
		t.Run(tt.collection+"."+tt.index, func(t *testing.T) {
			store := newFakeStore()
			_, err := New(store, logger.Discard(), Options{}).Run(context.Background())
			require.NoError(t, err)

			for i, idx := range store.indexes[tt.collection] {
				if idx.Name == tt.index {
					store.indexes[tt.collection][i].Unique = false
				}
			}

			report, err := Verify(context.Background(), store)
			require.NoError(t, err)

			assert.False(t, report.Ready)
			cr, _ := report.Collection(tt.collection)
			assert.Contains(t, cr.Indexes, tt.index)
			assert.Empty(t, cr.MissingIndexes)
			assert.Equal(t, []string{tt.index}, cr.NonUniqueIndexes)

			err = report.Err()
			assert.ErrorIs(t, err, ErrNotReady)
			assert.Contains(t, err.Error(), "not unique index "+tt.collection+"."+tt.index)
		})
	}
}

func TestVerify_NonUniqueIndexDeclaredNonUniqueIsFine(t *testing.T) {
	store := newFakeStore()
	_, err := New(store, logger.Discard(), Options{}).Run(context.Background())
	require.NoError(t, err)

	report, err := Verify(context.Background(), store)
	require.NoError(t, err)

	places, _ := report.Collection(PlacesCollection)
	assert.Empty(t, places.NonUniqueIndexes)
	assert.True(t, report.Ready)
}

func TestVerify_StoreError(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("connection refused")

	report, err := Verify(context.Background(), store)
	assert.Nil(t, report)
	assert.Error(t, err)
}

func TestReport_CollectionUnknown(t *testing.T) {
	_, ok := (&Report{}).Collection("flight_unknown")
	assert.False(t, ok)
}
