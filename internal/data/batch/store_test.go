package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
	"github.com/jwhalen/go-docket-metrics/internal/data/fetch"
)

func TestStoreRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.False(t, store.HasBundles())

	bundles := []fetch.CaseBundle{
		{
			CaseID: 41091,
			Entries: []model.RawDocketRow{
				{CaseID: 41091, SeqNo: 1, PartySubType: "cmp", FiledDate: "2021-01-04", Text: "complaint"},
			},
			Deadlines: []model.ScheduledEvent{
				{CaseID: 41091, EventType: "disp", DateSet: "2021-10-01"},
			},
		},
		{CaseID: 41099},
	}
	require.NoError(t, store.SaveBundles(bundles))
	assert.True(t, store.HasBundles())

	loaded, err := store.LoadBundles()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 41091, loaded[0].CaseID)
	require.Len(t, loaded[0].Entries, 1)
	assert.Equal(t, "cmp", loaded[0].Entries[0].PartySubType)
	require.Len(t, loaded[0].Deadlines, 1)
	assert.Equal(t, "disp", loaded[0].Deadlines[0].EventType)
}

func TestStoreCases(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	cases := []model.CaseMeta{
		{CaseID: 41091, CaseNumber: "3:21-cv-00001", Judge: "jdp", NatureOfSuit: 550, IsProSe: true},
	}
	require.NoError(t, store.SaveCases(cases))

	loaded, err := store.LoadCases()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, cases[0], loaded[0])
}

func TestStoreClear(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SaveBundles([]fetch.CaseBundle{{CaseID: 1}}))
	require.NoError(t, store.Clear())
	assert.False(t, store.HasBundles())

	_, err = store.LoadBundles()
	assert.Error(t, err)

	// clearing an already empty store is fine
	require.NoError(t, store.Clear())
}

func TestStoreRawBundlesKeepsColumnNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	bundles := []fetch.CaseBundle{{
		CaseID: 41091,
		Entries: []model.RawDocketRow{{
			CaseID:       41091,
			SeqNo:        1,
			PartyType:    "misc",
			PartySubType: "cmp",
			FiledDate:    "2020-01-05",
			Text:         "Complaint filed",
		}},
	}}
	require.NoError(t, store.SaveBundles(bundles))

	raw, err := store.RawBundles()
	require.NoError(t, err)

	// The stored payload carries the raw API column names, so the schema
	// check can run on it before any decode.
	assert.Contains(t, string(raw), `"dp_sub_type"`)
	assert.Contains(t, string(raw), `"de_date_filed"`)
}
