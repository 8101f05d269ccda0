package analyzer

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhalen/go-docket-metrics/internal/core/model"
	"github.com/jwhalen/go-docket-metrics/internal/data/fetch"
	"github.com/jwhalen/go-docket-metrics/internal/data/normalize"
)

func row(caseID, seqNo int, docNum int, pType, pSubType, filed, text string) model.RawDocketRow {
	return model.RawDocketRow{
		CaseID:       caseID,
		SeqNo:        seqNo,
		DocumentNum:  &docNum,
		PartyType:    pType,
		PartySubType: pSubType,
		PartySeqNo:   seqNo,
		FiledDate:    filed,
		Text:         text,
	}
}

func prisonerCaseBundle(caseID int) fetch.CaseBundle {
	return fetch.CaseBundle{
		CaseID: caseID,
		Entries: []model.RawDocketRow{
			row(caseID, 1, 1, "motion", "cmp", "2021-01-04", "Complaint filed"),
			row(caseID, 2, 2, "motion", "ifp", "2021-01-04", "Motion for leave to proceed in forma pauperis"),
			row(caseID, 3, 0, "motion", "madv", "2021-02-10", "Motion for leave to proceed in forma pauperis taken under advisement"),
			row(caseID, 4, 3, "order", "leave", "2021-02-20", "Order granting leave to proceed"),
		},
		Deadlines: []model.ScheduledEvent{
			{CaseID: caseID, EventType: "disp", DateSet: "2021-12-01"},
		},
		Hearings: []model.ScheduledEvent{
			{CaseID: caseID, EventType: "jst", DateSet: "2022-04-18"},
		},
	}
}

func TestResolveEndToEnd(t *testing.T) {
	a := New(&Config{Concurrency: 2})

	bundles := []fetch.CaseBundle{prisonerCaseBundle(41669)}
	cases := []model.CaseMeta{
		{CaseID: 41669, CaseNumber: "3:21-cv-00042", Judge: "jdp", NatureOfSuit: 550, Group: "Prisoner Petitions"},
	}

	rows, stats := a.Resolve(bundles, cases)

	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 0, stats.Skipped)
	require.Len(t, rows, 1)

	ms := rows[0].Milestones
	assert.Equal(t, 41669, ms.CaseID)
	assert.Equal(t, "Prisoner Petitions", ms.CaseGroup)
	require.NotNil(t, ms.ComplaintDate)
	assert.Equal(t, "2021-01-04", ms.ComplaintDate.Format("2006-01-02"))
	require.NotNil(t, ms.IFPDate)
	require.NotNil(t, ms.UADate)
	assert.Equal(t, "2021-02-10", ms.UADate.Format("2006-01-02"))
	require.NotNil(t, ms.LTPDate)
	assert.Equal(t, "2021-02-20", ms.LTPDate.Format("2006-01-02"))
	require.NotNil(t, ms.TotalElapsedDays)
	assert.Equal(t, 37, *ms.TotalElapsedDays)

	require.NotNil(t, rows[0].Deadlines)
	require.NotNil(t, rows[0].Deadlines.TrialDate)
	assert.Equal(t, "2022-04-18", rows[0].Deadlines.TrialDate.Format("2006-01-02"))
}

func TestResolveSkipsFailedAndEmptyBundles(t *testing.T) {
	a := New(&Config{Concurrency: 4})

	bundles := []fetch.CaseBundle{
		prisonerCaseBundle(41091),
		{CaseID: 41099, Err: fmt.Errorf("entries: boom")},
		{CaseID: 41106}, // fetched fine, but the docket is empty
	}

	rows, stats := a.Resolve(bundles, nil)

	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 2, stats.Skipped)
	require.Len(t, rows, 1)
	assert.Equal(t, 41091, rows[0].Milestones.CaseID)
}

func TestResolveSkipsMotionToVacateCases(t *testing.T) {
	a := New(&Config{Concurrency: 4})

	bundles := []fetch.CaseBundle{
		prisonerCaseBundle(41091),
		prisonerCaseBundle(41200),
	}
	cases := []model.CaseMeta{
		{CaseID: 41091, NatureOfSuit: 550, Group: "Prisoner Petitions"},
		{CaseID: 41200, NatureOfSuit: 510, Group: "Prisoner Petitions"},
	}

	rows, stats := a.Resolve(bundles, cases)

	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 1, stats.Skipped)
	require.Len(t, rows, 1)
	assert.Equal(t, 41091, rows[0].Milestones.CaseID)
}

func TestResolveOrdersByCaseID(t *testing.T) {
	a := New(&Config{Concurrency: 8})

	var bundles []fetch.CaseBundle
	for _, id := range []int{43516, 41091, 42000} {
		bundles = append(bundles, prisonerCaseBundle(id))
	}

	rows, stats := a.Resolve(bundles, nil)
	assert.Equal(t, 3, stats.Processed)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].Milestones.CaseID < rows[1].Milestones.CaseID)
	assert.True(t, rows[1].Milestones.CaseID < rows[2].Milestones.CaseID)
}

func TestResolveWithoutMetadata(t *testing.T) {
	a := New(&Config{})

	rows, stats := a.Resolve([]fetch.CaseBundle{prisonerCaseBundle(43516)}, nil)
	assert.Equal(t, 1, stats.Processed)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Milestones.CaseGroup)
	assert.Nil(t, rows[0].Milestones.TerminatedDate)
}

func TestNewDefaultsConcurrency(t *testing.T) {
	a := New(&Config{})
	assert.Greater(t, a.config.Concurrency, 0)
}

func TestResolveDoesNotBlockOnLargeBatch(t *testing.T) {
	a := New(&Config{Concurrency: 2})

	var bundles []fetch.CaseBundle
	for i := 0; i < 50; i++ {
		bundles = append(bundles, prisonerCaseBundle(50000+i))
	}

	done := make(chan struct{})
	go func() {
		_, stats := a.Resolve(bundles, nil)
		assert.Equal(t, 50, stats.Processed)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("resolution did not finish")
	}
}

func TestValidateBundles(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{
			name: "full_schema_passes",
			payload: `[{"caseId": 1, "entries": [{"de_caseid": 1, "de_seqno": 1,
				"de_document_num": 1, "dp_type": "misc", "dp_sub_type": "cmp",
				"de_date_filed": "2020-01-05", "dt_text": "complaint filed"}]}]`,
			wantErr: false,
		},
		{
			name: "first_populated_bundle_decides",
			payload: `[{"caseId": 1, "entries": []},
				{"caseId": 2, "entries": [{"de_caseid": 2, "de_seqno": 1,
				"de_document_num": 1, "dp_type": "misc", "de_date_filed": "2020-01-05",
				"dt_text": "complaint filed"}]}]`,
			wantErr: true,
		},
		{
			name:    "empty_batch_passes",
			payload: `[]`,
			wantErr: false,
		},
		{
			name:    "not_json",
			payload: `{{{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBundles([]byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateBundlesNamesMissingColumns(t *testing.T) {
	err := ValidateBundles([]byte(`[{"caseId": 1, "entries": [{"de_caseid": 1}]}]`))
	require.Error(t, err)
	assert.ErrorIs(t, err, normalize.ErrMissingColumns)
	assert.Contains(t, err.Error(), "dp_sub_type")
}
